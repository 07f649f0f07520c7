// Package goldmark produces mdview event sequences from markdown text using
// goldmark for parsing.
package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fwojciec/mdview"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Interface compliance check.
var _ mdview.Parser = (*Parser)(nil)

// Parser parses markdown with tables, task lists, strikethrough, footnotes
// and definition lists enabled, plus YAML front matter.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with the fixed extension set.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
				extension.Footnote,
				extension.DefinitionList,
			),
		),
	}
}

// Parse returns the events of text in document order. Spans index into text.
func (p *Parser) Parse(src string) []mdview.Spanned {
	if src == "" {
		return nil
	}
	source := []byte(src)
	w := &walker{source: source}

	if end, meta, ok := frontMatter(source); ok {
		span := mdview.Span{Start: 0, End: end}
		w.emit(mdview.EventStart{Tag: mdview.Tag{Kind: mdview.TagMetadataBlock}}, span)
		if meta != "" {
			w.emit(mdview.EventText{Text: meta}, span)
		}
		w.emit(mdview.EventEnd{Tag: mdview.TagMetadataBlock}, span)
		// Blank the block out so goldmark does not read the fences as
		// thematic breaks; offsets stay the same.
		source = maskFrontMatter(source, end)
	}

	doc := p.md.Parser().Parse(text.NewReader(source))
	w.walkChildren(doc)
	return w.events
}

type walker struct {
	source []byte
	events []mdview.Spanned
}

func (w *walker) emit(e mdview.Event, span mdview.Span) {
	w.events = append(w.events, mdview.Spanned{Event: e, Span: span})
}

func (w *walker) walkChildren(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.walk(c)
	}
}

// container emits Start, the children, and End. Both carry the span covering
// the node's own lines and everything emitted for its children.
func (w *walker) container(n ast.Node, tag mdview.Tag) {
	startIdx := len(w.events)
	w.emit(mdview.EventStart{Tag: tag}, mdview.Span{})
	w.walkChildren(n)

	span := linesSpan(n)
	for _, ev := range w.events[startIdx+1:] {
		span = union(span, ev.Span)
	}
	if span == (mdview.Span{}) && startIdx > 0 {
		end := w.events[startIdx-1].Span.End
		span = mdview.Span{Start: end, End: end}
	}
	w.events[startIdx].Span = span
	w.emit(mdview.EventEnd{Tag: tag.Kind}, span)
}

func (w *walker) walk(n ast.Node) {
	switch n := n.(type) {
	case *ast.Paragraph:
		w.container(n, mdview.Tag{Kind: mdview.TagParagraph})

	case *ast.TextBlock:
		// Tight list items carry their text without a paragraph.
		w.walkChildren(n)

	case *ast.Heading:
		w.container(n, mdview.Tag{Kind: mdview.TagHeading, Level: n.Level})

	case *ast.ThematicBreak:
		w.emit(mdview.EventRule{}, linesSpan(n))

	case *ast.CodeBlock:
		w.codeBlock(n, mdview.Tag{Kind: mdview.TagCodeBlock})

	case *ast.FencedCodeBlock:
		w.codeBlock(n, mdview.Tag{
			Kind:   mdview.TagCodeBlock,
			Fenced: true,
			Lang:   string(n.Language(w.source)),
		})

	case *ast.Blockquote:
		w.container(n, mdview.Tag{Kind: mdview.TagBlockQuote})

	case *ast.List:
		tag := mdview.Tag{Kind: mdview.TagList, Ordered: n.IsOrdered()}
		if tag.Ordered && n.Start >= 0 {
			tag.Start = uint64(n.Start)
		}
		w.container(n, tag)

	case *ast.ListItem:
		w.container(n, mdview.Tag{Kind: mdview.TagItem})

	case *ast.HTMLBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(w.source))
		}
		if n.HasClosure() {
			buf.Write(n.ClosureLine.Value(w.source))
		}
		span := linesSpan(n)
		w.emit(mdview.EventStart{Tag: mdview.Tag{Kind: mdview.TagHTMLBlock}}, span)
		w.emit(mdview.EventHTML{Text: buf.String()}, span)
		w.emit(mdview.EventEnd{Tag: mdview.TagHTMLBlock}, span)

	case *ast.Text:
		span := segmentSpan(n.Segment)
		w.emit(mdview.EventText{Text: string(n.Segment.Value(w.source))}, span)
		switch {
		case n.HardLineBreak():
			w.emit(mdview.EventHardBreak{}, mdview.Span{Start: span.End, End: span.End})
		case n.SoftLineBreak():
			w.emit(mdview.EventSoftBreak{}, mdview.Span{Start: span.End, End: span.End})
		}

	case *ast.String:
		w.emit(mdview.EventText{Text: string(n.Value)}, w.lastSpan())

	case *ast.CodeSpan:
		var (
			buf  strings.Builder
			span mdview.Span
		)
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(w.source))
				span = union(span, segmentSpan(t.Segment))
			case *ast.String:
				buf.Write(t.Value)
			}
		}
		w.emit(mdview.EventCode{Text: strings.ReplaceAll(buf.String(), "\n", " ")}, span)

	case *ast.Emphasis:
		kind := mdview.TagEmphasis
		if n.Level >= 2 {
			kind = mdview.TagStrong
		}
		w.container(n, mdview.Tag{Kind: kind})

	case *ast.Link:
		w.container(n, mdview.Tag{
			Kind:  mdview.TagLink,
			URL:   string(n.Destination),
			Title: string(n.Title),
		})

	case *ast.AutoLink:
		label := string(n.Label(w.source))
		span := w.lastSpan()
		if idx := bytes.Index(w.source[span.End:], []byte(label)); idx >= 0 {
			start := span.End + idx
			span = mdview.Span{Start: start, End: start + len(label)}
		}
		w.emit(mdview.EventStart{Tag: mdview.Tag{Kind: mdview.TagLink, URL: string(n.URL(w.source))}}, span)
		w.emit(mdview.EventText{Text: label}, span)
		w.emit(mdview.EventEnd{Tag: mdview.TagLink}, span)

	case *ast.Image:
		w.container(n, mdview.Tag{
			Kind:  mdview.TagImage,
			URL:   string(n.Destination),
			Title: string(n.Title),
		})

	case *ast.RawHTML:
		var (
			buf  bytes.Buffer
			span mdview.Span
		)
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(w.source))
			span = union(span, segmentSpan(seg))
		}
		w.emit(mdview.EventInlineHTML{Text: buf.String()}, span)

	case *east.Table:
		w.container(n, mdview.Tag{Kind: mdview.TagTable})
	case *east.TableHeader:
		w.container(n, mdview.Tag{Kind: mdview.TagTableHead})
	case *east.TableRow:
		w.container(n, mdview.Tag{Kind: mdview.TagTableRow})
	case *east.TableCell:
		w.container(n, mdview.Tag{Kind: mdview.TagTableCell})

	case *east.Strikethrough:
		w.container(n, mdview.Tag{Kind: mdview.TagStrikethrough})

	case *east.TaskCheckBox:
		w.emit(mdview.EventTaskListMarker{Checked: n.IsChecked}, w.checkboxSpan(n))

	case *east.FootnoteLink:
		w.emit(mdview.EventFootnoteReference{Label: strconv.Itoa(n.Index)}, w.lastSpan())
	case *east.FootnoteBacklink:
		// Margin notes are not linked back to their references.
	case *east.Footnote:
		w.container(n, mdview.Tag{Kind: mdview.TagFootnoteDefinition, Label: strconv.Itoa(n.Index)})

	case *east.DefinitionList:
		w.container(n, mdview.Tag{Kind: mdview.TagDefinitionList})
	case *east.DefinitionTerm:
		w.container(n, mdview.Tag{Kind: mdview.TagDefinitionListTitle})
	case *east.DefinitionDescription:
		w.container(n, mdview.Tag{Kind: mdview.TagDefinitionListDefinition})

	default:
		w.walkChildren(n)
	}
}

func (w *walker) codeBlock(n ast.Node, tag mdview.Tag) {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.source))
	}
	span := linesSpan(n)
	w.emit(mdview.EventStart{Tag: tag}, span)
	if buf.Len() > 0 {
		w.emit(mdview.EventText{Text: buf.String()}, span)
	}
	w.emit(mdview.EventEnd{Tag: mdview.TagCodeBlock}, span)
}

// checkboxSpan locates the [ ] marker at the start of the checkbox's
// paragraph.
func (w *walker) checkboxSpan(n ast.Node) mdview.Span {
	parent := n.Parent()
	if parent == nil || parent.Lines().Len() == 0 {
		return w.lastSpan()
	}
	line := parent.Lines().At(0)
	start := line.Start
	for start > 0 && w.source[start] != '[' && w.source[start-1] != '\n' {
		start--
	}
	if w.source[start] != '[' {
		if idx := bytes.IndexByte(w.source[start:], '['); idx >= 0 {
			start += idx
		}
	}
	end := start + 3
	if idx := bytes.IndexByte(w.source[start:], ']'); idx >= 0 {
		end = start + idx + 1
	}
	if end > len(w.source) {
		end = len(w.source)
	}
	return mdview.Span{Start: start, End: end}
}

// lastSpan returns an empty span at the end of the previous event.
func (w *walker) lastSpan() mdview.Span {
	if len(w.events) == 0 {
		return mdview.Span{}
	}
	end := w.events[len(w.events)-1].Span.End
	return mdview.Span{Start: end, End: end}
}

func segmentSpan(seg text.Segment) mdview.Span {
	return mdview.Span{Start: seg.Start, End: seg.Stop}
}

func linesSpan(n ast.Node) mdview.Span {
	if n.Type() != ast.TypeBlock {
		return mdview.Span{}
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return mdview.Span{}
	}
	return mdview.Span{Start: lines.At(0).Start, End: lines.At(lines.Len() - 1).Stop}
}

// union merges two spans. An empty zero span does not widen the other.
func union(a, b mdview.Span) mdview.Span {
	switch {
	case a == (mdview.Span{}):
		return b
	case b == (mdview.Span{}):
		return a
	}
	return mdview.Span{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}
