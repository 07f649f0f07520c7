package mdview_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/mdview"
	"github.com/fwojciec/mdview/goldmark"
	"github.com/fwojciec/mdview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func show(t *testing.T, text string, opts ...mdview.Option) (*mock.Canvas, mdview.Response) {
	t.Helper()
	c := &mock.Canvas{}
	v := mdview.NewViewer("doc", goldmark.NewParser(), opts...)
	resp := v.Show(c, mdview.NewCache(), text)
	return c, resp
}

func labels(c *mock.Canvas) []mdview.RichText {
	var out []mdview.RichText
	for _, op := range c.Find("Label") {
		out = append(out, op.Text)
	}
	return out
}

func TestViewer_Show(t *testing.T) {
	t.Parallel()

	t.Run("heading renders at full heading size without blank rows", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "# Hello")
		assert.Empty(t, c.Find("Newline"))
		ls := labels(c)
		require.Len(t, ls, 1)
		assert.Equal(t, "Hello", ls[0].Text)
		assert.True(t, ls[0].Heading)
		assert.True(t, ls[0].Strong)
		assert.Equal(t, float32(28), ls[0].Size)
	})

	t.Run("block separators between blocks only", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "# Hello\n\nfirst\n\nsecond")
		assert.Equal(t, "Hello\n\nfirst\n\nsecond", c.Text())
	})

	t.Run("smaller headings interpolate size", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "## Sub")
		ls := labels(c)
		require.Len(t, ls, 1)
		assert.False(t, ls[0].Heading)
		assert.InDelta(t, 14+14*0.835, ls[0].Size, 0.001)
	})

	t.Run("unordered list uses filled bullets", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "- a\n- b")
		assert.Equal(t, "• a\n• b", c.Text())
		bullets := c.Find("Bullet")
		require.Len(t, bullets, 2)
		for _, b := range bullets {
			assert.False(t, b.Hollow)
		}
		assert.Empty(t, c.Find("Number"))
	})

	t.Run("list ends its row when content follows", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "- a\n- b\n\nafter")
		assert.Equal(t, "• a\n• b\n\nafter", c.Text())
	})

	t.Run("ordered list numbers from the parsed start", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "1. a\n2. b")
		assert.Equal(t, "1. a\n2. b", c.Text())

		c, _ = show(t, "3. a\n7. b")
		var numbers []string
		for _, op := range c.Find("Number") {
			numbers = append(numbers, op.Label)
		}
		assert.Equal(t, []string{"3.", "4."}, numbers)
	})

	t.Run("nested list counters are independent", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "1. a\n   1. x\n   2. y\n2. b\n")
		var numbers []string
		for _, op := range c.Find("Number") {
			numbers = append(numbers, op.Label)
		}
		assert.Equal(t, []string{"1.", "1.", "2.", "2."}, numbers)
		assert.Equal(t, "1. a\n    1. x\n    2. y\n2. b", c.Text())
	})

	t.Run("nested unordered items use hollow bullets", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "- a\n  - b\n")
		bullets := c.Find("Bullet")
		require.Len(t, bullets, 2)
		assert.False(t, bullets[0].Hollow)
		assert.True(t, bullets[1].Hollow)
	})

	t.Run("alert replaces its marker", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "> [!TIP]\n> body")
		quotes := c.Find("BeginBlockquote")
		require.Len(t, quotes, 1)
		require.NotNil(t, quotes[0].Accent)
		assert.Equal(t, mdview.Color{R: 0, G: 130, B: 20}, *quotes[0].Accent)
		assert.Equal(t, "💡 Tip\nbody", c.Text())
		assert.NotContains(t, c.Text(), "[!TIP]")
	})

	t.Run("alert markers match case-insensitively", func(t *testing.T) {
		t.Parallel()
		for _, marker := range []string{"[!note]", "[!NOTE]", "[!Note]"} {
			c, _ := show(t, "> "+marker+"\n> body")
			quotes := c.Find("BeginBlockquote")
			require.Len(t, quotes, 1, marker)
			require.NotNil(t, quotes[0].Accent, marker)
			assert.Equal(t, mdview.Color{R: 10, G: 80, B: 210}, *quotes[0].Accent, marker)
			assert.Contains(t, c.Text(), "Note", marker)
			assert.NotContains(t, c.Text(), marker, marker)
		}
	})

	t.Run("unknown alert renders as a plain quote", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "> [!UNKNOWN]\n> body")
		quotes := c.Find("BeginBlockquote")
		require.Len(t, quotes, 1)
		assert.Nil(t, quotes[0].Accent)
		assert.Contains(t, c.Text(), "[!UNKNOWN]")
		for _, l := range labels(c) {
			assert.True(t, l.Weak, l.Text)
		}
	})

	t.Run("empty alert bundle disables alerts", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "> [!TIP]\n> body", mdview.WithAlerts(mdview.AlertBundle{}))
		quotes := c.Find("BeginBlockquote")
		require.Len(t, quotes, 1)
		assert.Nil(t, quotes[0].Accent)
		assert.Contains(t, c.Text(), "[!TIP]")
	})

	t.Run("table renders a framed grid", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "| A | B |\n|---|---|\n| 1 | 2 |")
		assert.Len(t, c.Find("BeginFrame"), 1)
		grids := c.Find("BeginGrid")
		require.Len(t, grids, 1)
		assert.Equal(t, "doc_table_0", grids[0].Label)
		assert.Len(t, c.Find("BeginHorizontal"), 4)
		assert.Len(t, c.Find("EndRow"), 2)
		assert.Equal(t, "A  B  \n1  2  \n", c.Text())
	})

	t.Run("tables get distinct ids", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "| A |\n|---|\n| 1 |\n\ntext\n\n| B |\n|---|\n| 2 |\n")
		grids := c.Find("BeginGrid")
		require.Len(t, grids, 2)
		assert.Equal(t, "doc_table_0", grids[0].Label)
		assert.Equal(t, "doc_table_1", grids[1].Label)
	})

	t.Run("code block is handed over whole", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "```go\nfunc main() {}\n```")
		blocks := c.Find("CodeBlock")
		require.Len(t, blocks, 1)
		assert.Equal(t, "go", blocks[0].Lang)
		assert.Equal(t, "func main() {}\n", blocks[0].Code)
		assert.Equal(t, 80, blocks[0].Width)
		assert.Equal(t, mdview.SyntaxTheme{Light: "github", Dark: "monokai"}, blocks[0].Theme)
		assert.Empty(t, c.Find("Label"))
	})

	t.Run("links without hooks navigate", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "[Go](https://go.dev)")
		links := c.Find("Hyperlink")
		require.Len(t, links, 1)
		assert.Equal(t, "https://go.dev", links[0].Label)
		require.Len(t, links[0].Texts, 1)
		assert.Equal(t, "Go", links[0].Texts[0].Text)
	})

	t.Run("images get the implicit scheme and alt text", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "![a cat](cat.png)")
		images := c.Find("Image")
		require.Len(t, images, 1)
		assert.Equal(t, "file://cat.png", images[0].Label)
		assert.Equal(t, 80, images[0].Width)
		require.Len(t, images[0].Texts, 1)
		assert.Equal(t, "a cat", images[0].Texts[0].Text)
	})

	t.Run("images keep explicit schemes and honour options", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "![alt](https://x.test/a.png)",
			mdview.WithMaxImageWidth(20), mdview.WithAltTextOnHover(false))
		images := c.Find("Image")
		require.Len(t, images, 1)
		assert.Equal(t, "https://x.test/a.png", images[0].Label)
		assert.Equal(t, 20, images[0].Width)
		assert.Empty(t, images[0].Texts)
	})

	t.Run("image inside a link", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "[![logo](logo.png)](https://go.dev)")
		assert.Len(t, c.Find("Image"), 1)
		assert.Len(t, c.Find("Hyperlink"), 1)
	})

	t.Run("inline styles", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "**b** *i* ~~s~~ `c`")
		byText := map[string]mdview.RichText{}
		for _, l := range labels(c) {
			byText[l.Text] = l
		}
		assert.True(t, byText["b"].Strong)
		assert.True(t, byText["i"].Italic)
		assert.True(t, byText["s"].Strikethrough)
		assert.True(t, byText["c"].Code)
	})

	t.Run("rule", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "a\n\n---\n\nb")
		assert.Len(t, c.Find("Separator"), 1)
	})

	t.Run("footnotes", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "text[^1]\n\n[^1]: note")
		refs := c.Find("FootnoteReference")
		require.Len(t, refs, 1)
		assert.Equal(t, "1", refs[0].Label)
		defs := c.Find("FootnoteDefinition")
		require.Len(t, defs, 1)
		assert.Equal(t, "1", defs[0].Label)
	})

	t.Run("definition list indents its definition", func(t *testing.T) {
		t.Parallel()
		c, _ := show(t, "Term\n: Meaning\n")
		assert.Contains(t, c.Text(), "Term")
		assert.Contains(t, c.Text(), "    Meaning")
	})

	t.Run("read-only checkboxes are static", func(t *testing.T) {
		t.Parallel()
		c := &mock.Canvas{CheckboxFn: func(checked, interactive bool) bool { return true }}
		v := mdview.NewViewer("doc", goldmark.NewParser())
		resp := v.Show(c, nil, "- [ ] task")
		boxes := c.Find("Checkbox")
		require.Len(t, boxes, 1)
		assert.False(t, boxes[0].Interactive)
		assert.Empty(t, resp.CheckboxEvents)
	})

	t.Run("response covers the rendered rows", func(t *testing.T) {
		t.Parallel()
		_, resp := show(t, "a\n\nb")
		assert.Equal(t, mdview.Rect{Min: mdview.Point{}, Max: mdview.Point{X: 80, Y: 3}}, resp.Rect)
	})
}

func TestViewer_ShowMut(t *testing.T) {
	t.Parallel()

	t.Run("toggling a checkbox splices the marker", func(t *testing.T) {
		t.Parallel()
		c := &mock.Canvas{CheckboxFn: func(checked, interactive bool) bool { return interactive }}
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := "- [ ] task"

		resp := v.ShowMut(c, mdview.NewCache(), &text)

		require.Len(t, resp.CheckboxEvents, 1)
		ev := resp.CheckboxEvents[0]
		assert.True(t, ev.Checked)
		assert.Equal(t, mdview.Span{Start: 2, End: 5}, ev.Span)
		assert.Equal(t, "- [x] task", text)

		var checked []bool
		for _, sp := range goldmark.NewParser().Parse(text) {
			if m, ok := sp.Event.(mdview.EventTaskListMarker); ok {
				checked = append(checked, m.Checked)
			}
		}
		assert.Equal(t, []bool{true}, checked)
	})

	t.Run("unclicked checkboxes leave text alone", func(t *testing.T) {
		t.Parallel()
		c := &mock.Canvas{}
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := "- [x] done\n- [ ] todo"
		resp := v.ShowMut(c, nil, &text)
		assert.Empty(t, resp.CheckboxEvents)
		assert.Equal(t, "- [x] done\n- [ ] todo", text)
		for _, op := range c.Find("Checkbox") {
			assert.True(t, op.Interactive)
		}
	})
}

func TestViewer_LinkHooks(t *testing.T) {
	t.Parallel()

	t.Run("hooked links report clicks instead of navigating", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		cache.AddLinkHook("next")
		v := mdview.NewViewer("doc", goldmark.NewParser())

		c := &mock.Canvas{LinkFn: func([]mdview.RichText) bool { return true }}
		v.Show(c, cache, "[go on](next)")
		assert.Len(t, c.Find("Link"), 1)
		assert.Empty(t, c.Find("Hyperlink"))
		clicked, ok := cache.LinkHook("next")
		assert.True(t, ok)
		assert.True(t, clicked)

		// States reset at the start of every pass.
		v.Show(&mock.Canvas{}, cache, "[go on](next)")
		clicked, ok = cache.LinkHook("next")
		assert.True(t, ok)
		assert.False(t, clicked)
	})

	t.Run("registry operations", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		_, ok := cache.LinkHook("a")
		assert.False(t, ok)

		cache.AddLinkHook("a")
		cache.AddLinkHook("b")
		state, ok := cache.RemoveLinkHook("a")
		assert.True(t, ok)
		assert.False(t, state)
		_, ok = cache.LinkHook("a")
		assert.False(t, ok)

		cache.ClearLinkHooks()
		_, ok = cache.LinkHook("b")
		assert.False(t, ok)
	})
}

// nestedList builds n top-level items, each with one nested item.
func nestedList(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "- item%d\n  - sub%d\n", i, i)
	}
	return b.String()
}

// listsBetweenParagraphs alternates paragraphs with two-item lists.
func listsBetweenParagraphs(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "para%d\n\n- a%d\n- b%d\n\n", i, i, i)
	}
	return b.String()
}

// mixedBlocks repeats a section with a heading, a paragraph, a three-level
// list, an ordered list and a table.
func mixedBlocks(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "## Section %d\n\npara %d\n\n", i, i)
		fmt.Fprintf(&b, "- a%d\n  - b%d\n    - c%d\n  - d%d\n- e%d\n\n", i, i, i, i, i)
		fmt.Fprintf(&b, "1. one\n2. two\n3. three\n\n")
		fmt.Fprintf(&b, "| h |\n|---|\n| v%d |\n\n", i)
	}
	return b.String()
}

func TestViewer_ShowScrollable(t *testing.T) {
	t.Parallel()

	t.Run("first frame records split points and page size", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		c := &mock.Canvas{}

		v.ShowScrollable(c, cache, nestedList(10))

		sc, ok := cache.Scroll("doc")
		require.True(t, ok)
		require.NotNil(t, sc.PageSize)
		assert.Equal(t, 20, sc.PageSize.H)
		assert.Equal(t, mdview.Size{W: 80, H: 1 << 20}, sc.AvailableSize)
		assert.Len(t, sc.SplitPoints, 21)
		for i := 1; i < len(sc.SplitPoints); i++ {
			assert.Greater(t, sc.SplitPoints[i].Index, sc.SplitPoints[i-1].Index)
		}
	})

	t.Run("split points are stable across cleared caches", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := nestedList(6)

		v.ShowScrollable(&mock.Canvas{}, cache, text)
		first, _ := cache.Scroll("doc")
		points := append([]mdview.SplitPoint(nil), first.SplitPoints...)
		page := *first.PageSize

		cache.ClearScrollable("doc")
		_, ok := cache.Scroll("doc")
		require.False(t, ok)

		v.ShowScrollable(&mock.Canvas{}, cache, text)
		second, _ := cache.Scroll("doc")
		assert.Equal(t, points, second.SplitPoints)
		assert.Equal(t, page, *second.PageSize)
	})

	t.Run("later frames render only the window", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := nestedList(10)
		v.ShowScrollable(&mock.Canvas{}, cache, text)

		c := &mock.Canvas{View: mdview.Rect{Min: mdview.Point{Y: 10}, Max: mdview.Point{X: 80, Y: 14}}}
		resp := v.ShowScrollable(c, cache, text)

		assert.Equal(t, 20, c.MinHeight)
		allocs := c.Find("Allocate")
		require.Len(t, allocs, 1)
		// The window resumes at the end of "    ◦ sub4" on row 9.
		assert.Equal(t, mdview.Size{W: 10, H: 9}, allocs[0].Size)
		assert.Equal(t, "\n• item5\n    ◦ sub5\n• item6\n    ◦ sub6\n• item7\n    ◦ sub7", c.Text())
		assert.Equal(t, 20, resp.Rect.Size().H)
	})

	t.Run("windows match the full render", func(t *testing.T) {
		t.Parallel()
		for name, text := range map[string]string{
			"lists between paragraphs": listsBetweenParagraphs(12),
			"mixed blocks":             mixedBlocks(8),
		} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				cache := mdview.NewCache()
				v := mdview.NewViewer("doc", goldmark.NewParser())
				full := &mock.Canvas{}
				v.ShowScrollable(full, cache, text)
				fullRows := strings.Split(full.Text(), "\n")
				sc, _ := cache.Scroll("doc")

				for top := 5; top+6 <= min(sc.PageSize.H, len(fullRows)); top += 7 {
					bottom := top + 6
					c := &mock.Canvas{View: mdview.Rect{Min: mdview.Point{Y: top}, Max: mdview.Point{X: 80, Y: bottom}}}
					v.ShowScrollable(c, cache, text)

					skipped := 0
					if allocs := c.Find("Allocate"); len(allocs) > 0 {
						skipped = allocs[0].Size.H
					}
					require.LessOrEqual(t, skipped, top)
					rows := strings.Split(c.Text(), "\n")
					for y := top; y < bottom; y++ {
						require.Less(t, y-skipped, len(rows), "row %d", y)
						assert.Equal(t, fullRows[y], rows[y-skipped], "row %d of window at %d", y, top)
					}
				}
			})
		}
	})

	t.Run("window after a top-level list resumes outside it", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := listsBetweenParagraphs(12)
		v.ShowScrollable(&mock.Canvas{}, cache, text)

		c := &mock.Canvas{View: mdview.Rect{Min: mdview.Point{Y: 30}, Max: mdview.Point{X: 80, Y: 36}}}
		v.ShowScrollable(c, cache, text)

		require.NotEmpty(t, c.Find("Allocate"))
		for _, b := range c.Find("Bullet") {
			assert.False(t, b.Hollow)
		}
		assert.Contains(t, c.Text(), "• b5\n\npara6\n\n• a6\n• b6\n\npara7")
	})

	t.Run("split points follow top-level blocks", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		v.ShowScrollable(&mock.Canvas{}, cache, "one\n\ntwo\n\n| h |\n|---|\n| v |\n\nthree")

		sc, _ := cache.Scroll("doc")
		require.Len(t, sc.SplitPoints, 4)
		for _, sp := range sc.SplitPoints {
			assert.True(t, sp.Resume.Line.Start)
			assert.Empty(t, sp.Resume.Levels)
		}
		assert.Equal(t, 1, sc.SplitPoints[2].Resume.Tables)
	})

	t.Run("split points inside lists keep the open levels", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		v.ShowScrollable(&mock.Canvas{}, cache, "1. a\n   - x\n2. b\n")

		sc, _ := cache.Scroll("doc")
		require.NotEmpty(t, sc.SplitPoints)
		first := sc.SplitPoints[0]
		assert.Equal(t, []mdview.ListLevel{{Ordered: true, Next: 2}}, first.Resume.Levels)
		assert.True(t, first.Resume.Begun)
		assert.False(t, first.Resume.Line.Start)
	})

	t.Run("size change rebuilds the cache", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		v := mdview.NewViewer("doc", goldmark.NewParser())
		text := nestedList(4)
		v.ShowScrollable(&mock.Canvas{}, cache, text)

		c := &mock.Canvas{Width: 40}
		v.ShowScrollable(c, cache, text)
		assert.Empty(t, c.Find("Allocate"))
		assert.Zero(t, c.MinHeight)
		sc, _ := cache.Scroll("doc")
		assert.Equal(t, 40, sc.AvailableSize.W)
	})

	t.Run("clear all forgets every viewer", func(t *testing.T) {
		t.Parallel()
		cache := mdview.NewCache()
		for _, id := range []string{"a", "b"} {
			mdview.NewViewer(id, goldmark.NewParser()).ShowScrollable(&mock.Canvas{}, cache, "- x")
		}
		cache.ClearAllScrollable()
		_, ok := cache.Scroll("a")
		assert.False(t, ok)
		_, ok = cache.Scroll("b")
		assert.False(t, ok)
	})
}
