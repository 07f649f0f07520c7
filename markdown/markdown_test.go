package markdown_test

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/mdview"
	"github.com/fwojciec/mdview/markdown"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := mdview.DefaultTheme()
	render := func(src string, width int) string {
		return ansi.Strip(markdown.Render(src, width, theme))
	}

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("", 80, theme)
		assert.Equal(t, "", result)
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := render("hello world", 80)
		assert.Contains(t, result, "hello world")
	})

	t.Run("heading renders with styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Title", 80, theme)
		paragraph := markdown.Render("Title", 80, theme)
		assert.Contains(t, heading, "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("bold text", func(t *testing.T) {
		t.Parallel()
		result := render("**bold**", 80)
		assert.Contains(t, result, "bold")
	})

	t.Run("italic text", func(t *testing.T) {
		t.Parallel()
		result := render("*italic*", 80)
		assert.Contains(t, result, "italic")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := render("`code`", 80)
		assert.Contains(t, result, "code")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		result := render(src, 40)
		assert.Contains(t, result, `fmt.Println("hello world")`)
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		src := "```python\nprint('hi')\n```"
		result := render(src, 80)
		assert.Contains(t, result, "python")
		assert.Contains(t, result, "print('hi')")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		src := "- one\n- two\n- three"
		result := render(src, 80)
		assert.Contains(t, result, "one")
		assert.Contains(t, result, "two")
		assert.Contains(t, result, "three")
	})

	t.Run("ordered list", func(t *testing.T) {
		t.Parallel()
		src := "1. first\n2. second"
		result := render(src, 80)
		assert.Contains(t, result, "first")
		assert.Contains(t, result, "second")
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := render("[click](https://example.com)", 80)
		assert.Contains(t, result, "click")
		assert.Contains(t, result, "example.com")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		result := render(long, 30)
		assert.Contains(t, result, "word1")
		assert.Contains(t, result, "word12")
		lines := strings.Split(result, "\n")
		assert.Greater(t, len(lines), 1)
	})

	t.Run("bold italic text", func(t *testing.T) {
		t.Parallel()
		result := render("***bold italic***", 80)
		assert.Contains(t, result, "bold italic")
	})

	t.Run("multiple paragraphs separated by blank lines", func(t *testing.T) {
		t.Parallel()
		src := "first paragraph\n\nsecond paragraph"
		result := render(src, 80)
		assert.Contains(t, result, "first paragraph")
		assert.Contains(t, result, "second paragraph")
	})

	t.Run("heading levels", func(t *testing.T) {
		t.Parallel()
		result := render("## Subtitle", 80)
		assert.Contains(t, result, "Subtitle")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		src := "- outer\n  - inner one\n  - inner two"
		result := render(src, 80)
		assert.Contains(t, result, "outer")
		assert.Contains(t, result, "inner one")
		assert.Contains(t, result, "inner two")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		result := render(src, 30)
		lines := strings.Split(result, "\n")
		assert.True(t, strings.HasPrefix(lines[0], "• "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("task list renders checkboxes", func(t *testing.T) {
		t.Parallel()
		result := render("- [x] done\n- [ ] todo", 80)
		assert.Contains(t, result, "[x]")
		assert.Contains(t, result, "[ ]")
		assert.Contains(t, result, "done")
	})

	t.Run("alerts show their title", func(t *testing.T) {
		t.Parallel()
		result := render("> [!WARNING]\n> careful", 80)
		assert.Contains(t, result, "Warning")
		assert.Contains(t, result, "careful")
		assert.NotContains(t, result, "[!WARNING]")
	})

	t.Run("table cells are framed", func(t *testing.T) {
		t.Parallel()
		result := render("| k | v |\n|---|---|\n| a | b |", 80)
		assert.Contains(t, result, "╭")
		assert.Contains(t, result, "k")
		assert.Contains(t, result, "b")
	})

	t.Run("viewer options apply", func(t *testing.T) {
		t.Parallel()
		plain := ansi.Strip(markdown.Render("> [!NOTE]\n> x", 80, theme, mdview.WithAlerts(mdview.NewAlertBundle())))
		assert.Contains(t, plain, "[!NOTE]")
	})
}
