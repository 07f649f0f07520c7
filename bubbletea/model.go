package bubbletea

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdview"
	"github.com/fwojciec/mdview/goldmark"
	mdlipgloss "github.com/fwojciec/mdview/lipgloss"
)

var _ tea.Model = Model{}

// Option configures a Model.
type Option func(*Model)

// WithViewerOptions sets the renderer options of every document viewer.
// Task checkboxes are always interactive.
func WithViewerOptions(opts ...mdview.Option) Option {
	return func(m *Model) {
		m.viewerOpts = append(m.viewerOpts, opts...)
	}
}

// WithHighlighter sets the code block highlighter.
func WithHighlighter(h mdview.Highlighter) Option {
	return func(m *Model) {
		m.highlighter = h
	}
}

// WithHyperlinks makes the terminal render links as OSC 8 hyperlinks.
func WithHyperlinks(enabled bool) Option {
	return func(m *Model) {
		m.hyperlinks = enabled
	}
}

// WithOpenURL sets the function that opens activated link destinations.
func WithOpenURL(fn func(url string) error) Option {
	return func(m *Model) {
		m.openURL = fn
	}
}

// WithSave sets the function that writes a document back after one of its
// checkboxes was toggled.
func WithSave(fn func(Document) error) Option {
	return func(m *Model) {
		m.save = fn
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithState restores the current document and the scroll offsets by
// document name.
func WithState(current string, offsets map[string]int) Option {
	return func(m *Model) {
		for i, d := range m.docs {
			if d.Name == current {
				m.current = i
			}
		}
		for name, off := range offsets {
			m.offsets[name] = off
		}
	}
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keys = k
	}
}

// Model is the Bubble Tea model of the markdown viewer. Every change of
// scroll offset, focus or document renders a new frame into the viewport.
type Model struct {
	// Viewport is the scrollable document area. Exported for test access.
	Viewport viewport.Model
	// Help renders the key bindings. Exported for test access.
	Help help.Model

	keys        KeyMap
	theme       mdview.Theme
	styles      Styles
	highlighter mdview.Highlighter
	hyperlinks  bool
	openURL     func(string) error
	save        func(Document) error
	logger      *slog.Logger

	docs       []Document
	viewers    []*mdview.Viewer
	viewerOpts []mdview.Option
	cache      *mdview.Cache
	// hooks maps link hook names to document indices.
	hooks   map[string]int
	current int
	offsets map[string]int

	targets []mdlipgloss.Target
	focus   *mdview.Point

	status string
	err    error
	width  int
	height int
	ready  bool
}

// New creates a viewer Model for docs.
func New(docs []Document, theme mdview.Theme, opts ...Option) Model {
	m := Model{
		Help:    help.New(),
		keys:    DefaultKeyMap(),
		theme:   theme,
		styles:  NewStyles(theme),
		logger:  slog.New(slog.DiscardHandler),
		docs:    append([]Document(nil), docs...),
		cache:   mdview.NewCache(),
		hooks:   make(map[string]int),
		offsets: make(map[string]int),
	}
	for _, opt := range opts {
		opt(&m)
	}

	parser := goldmark.NewParser()
	viewerOpts := append(append([]mdview.Option(nil), m.viewerOpts...), mdview.WithMutable(true))
	for i, d := range m.docs {
		m.viewers = append(m.viewers, mdview.NewViewer(d.Name, parser, viewerOpts...))
		m.addHook(d.Name, i)
		m.addHook(path.Base(d.Name), i)
	}
	return m
}

// addHook registers name as a link hook switching to document i. Names
// shared by two documents keep the first.
func (m *Model) addHook(name string, i int) {
	if _, ok := m.hooks[name]; ok {
		return
	}
	m.hooks[name] = i
	m.cache.AddLinkHook(name)
}

// Current returns the document on screen.
func (m Model) Current() Document {
	if len(m.docs) == 0 {
		return Document{}
	}
	return m.docs[m.current]
}

// Documents returns the open documents with their checkbox edits applied.
func (m Model) Documents() []Document {
	return append([]Document(nil), m.docs...)
}

// Offsets returns the scroll offsets by document name.
func (m Model) Offsets() map[string]int {
	out := make(map[string]int, len(m.offsets)+1)
	for name, off := range m.offsets {
		out[name] = off
	}
	if m.ready && len(m.docs) > 0 {
		out[m.docs[m.current].Name] = m.Viewport.YOffset
	}
	return out
}

// Focus returns the position of the focused link or checkbox.
func (m Model) Focus() (mdview.Point, bool) {
	if m.focus == nil {
		return mdview.Point{}, false
	}
	return *m.focus, true
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case openedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("open %s: %w", msg.URL, msg.Err)
		} else {
			m.err = nil
			m.status = "opened " + msg.URL
		}
		return m, nil

	case savedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("save %s: %w", msg.Name, msg.Err)
		} else {
			m.err = nil
			m.status = "saved " + msg.Name
		}
		return m, nil
	}

	return m.scroll(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.keys))
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.Help.Width = msg.Width
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, m.viewportHeight())
		m.ready = true
		return m.restore()
	}
	m.Viewport.Width = msg.Width
	m.Viewport.Height = m.viewportHeight()
	return m.frame(false)
}

func (m Model) viewportHeight() int {
	return max(m.height-1-lipgloss.Height(m.Help.View(m.keys)), 1)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		if m.ready {
			m.Viewport.Height = m.viewportHeight()
			return m.frame(false)
		}
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTarget):
		return m.moveFocus(1).frame(false)

	case key.Matches(msg, m.keys.PrevTarget):
		return m.moveFocus(-1).frame(false)

	case key.Matches(msg, m.keys.Activate):
		if m.focus == nil {
			return m, nil
		}
		return m.frame(true)

	case key.Matches(msg, m.keys.NextDoc):
		return m.switchTo((m.current + 1) % max(len(m.docs), 1))

	case key.Matches(msg, m.keys.PrevDoc):
		return m.switchTo((m.current - 1 + len(m.docs)) % max(len(m.docs), 1))
	}

	return m.scroll(msg)
}

// scroll passes msg to the viewport and renders a frame when the offset
// moved.
func (m Model) scroll(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	offset := m.Viewport.YOffset
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	if m.Viewport.YOffset == offset {
		return m, cmd
	}
	m, frameCmd := m.frame(false)
	return m, tea.Batch(cmd, frameCmd)
}

// switchTo shows document i at its remembered offset.
func (m Model) switchTo(i int) (Model, tea.Cmd) {
	if len(m.docs) == 0 || i == m.current {
		return m, nil
	}
	m.offsets[m.docs[m.current].Name] = m.Viewport.YOffset
	m.current = i
	m.Viewport.SetYOffset(0)
	m.focus = nil
	m.targets = nil
	m.status = ""
	return m.restore()
}

// restore renders the current document and scrolls to its remembered
// offset. The first frame lays out the whole document, so the offset can
// only be applied after it.
func (m Model) restore() (Model, tea.Cmd) {
	m, cmd := m.frame(false)
	if len(m.docs) == 0 {
		return m, cmd
	}
	off, ok := m.offsets[m.docs[m.current].Name]
	if !ok || off == m.Viewport.YOffset {
		return m, cmd
	}
	m.Viewport.SetYOffset(off)
	m, next := m.frame(false)
	return m, tea.Batch(cmd, next)
}

// moveFocus focuses the next or previous target of the last frame and
// scrolls it into view. Without focus it starts from the visible rows.
func (m Model) moveFocus(dir int) Model {
	if len(m.targets) == 0 {
		m.focus = nil
		return m
	}
	i := -1
	if m.focus != nil {
		for j, t := range m.targets {
			if t.Pos == *m.focus {
				i = j
				break
			}
		}
	}
	n := len(m.targets)
	switch {
	case i >= 0:
		i = (i + dir + n) % n
	case dir > 0:
		i = 0
		for j, t := range m.targets {
			if t.Pos.Y >= m.Viewport.YOffset {
				i = j
				break
			}
		}
	default:
		i = n - 1
		for j := n - 1; j >= 0; j-- {
			if m.targets[j].Pos.Y < m.Viewport.YOffset+m.Viewport.Height {
				i = j
				break
			}
		}
	}
	pos := m.targets[i].Pos
	m.focus = &pos

	switch {
	case pos.Y < m.Viewport.YOffset:
		m.Viewport.SetYOffset(pos.Y)
	case pos.Y >= m.Viewport.YOffset+m.Viewport.Height:
		m.Viewport.SetYOffset(pos.Y - m.Viewport.Height + 1)
	}
	return m
}

func (m Model) canvas(activate bool, navigate func(string)) *mdlipgloss.Canvas {
	view := mdview.Rect{
		Min: mdview.Point{Y: m.Viewport.YOffset},
		Max: mdview.Point{X: m.Viewport.Width, Y: m.Viewport.YOffset + m.Viewport.Height},
	}
	opts := []mdlipgloss.Option{
		mdlipgloss.WithTheme(m.theme),
		mdlipgloss.WithHyperlinks(m.hyperlinks),
		mdlipgloss.WithViewport(view),
	}
	if m.highlighter != nil {
		opts = append(opts, mdlipgloss.WithHighlighter(m.highlighter))
	}
	if m.focus != nil {
		opts = append(opts, mdlipgloss.WithFocusAt(*m.focus))
	}
	if activate {
		opts = append(opts, mdlipgloss.WithActivate())
	}
	if navigate != nil {
		opts = append(opts, mdlipgloss.WithNavigate(navigate))
	}
	return mdlipgloss.NewCanvas(m.Viewport.Width, opts...)
}

// frame renders the current document into the viewport. An activated
// frame lets the focused widget report its click.
func (m Model) frame(activate bool) (Model, tea.Cmd) {
	if !m.ready || len(m.docs) == 0 {
		return m, nil
	}
	var cmds []tea.Cmd
	var navigated string
	doc := m.docs[m.current]
	v := m.viewers[m.current]

	c := m.canvas(activate, func(dest string) { navigated = dest })
	resp := v.ShowScrollable(c, m.cache, doc.Text)
	m.logger.Debug("frame",
		"doc", doc.Name,
		"offset", m.Viewport.YOffset,
		"targets", len(c.Targets()),
		"activate", activate,
	)

	// Hook states reset on the next render, so read them first.
	target := -1
	for name, i := range m.hooks {
		if clicked, _ := m.cache.LinkHook(name); clicked {
			target = i
		}
	}

	if len(resp.CheckboxEvents) > 0 {
		text, err := mdview.ApplyCheckboxEvents(doc.Text, resp.CheckboxEvents)
		if err != nil {
			m.err = err
		} else {
			doc.Text = text
			m.docs[m.current] = doc
			m.cache.ClearScrollable(v.ID())
			cmds = append(cmds, m.saveCmd(doc))
			// The layout changed; lay the document out again.
			c = m.canvas(false, nil)
			v.ShowScrollable(c, m.cache, doc.Text)
		}
	}

	m.targets = c.Targets()
	m.Viewport.SetContent(c.Render())

	if navigated != "" {
		cmds = append(cmds, m.openCmd(navigated))
	}
	if target >= 0 && target != m.current {
		m.logger.Debug("follow link", "from", doc.Name, "to", m.docs[target].Name)
		next, cmd := m.switchTo(target)
		return next, tea.Batch(append(cmds, cmd)...)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openCmd(url string) tea.Cmd {
	if m.openURL == nil {
		return func() tea.Msg { return openedMsg{URL: url, Err: mdview.ErrNoOpener} }
	}
	open := m.openURL
	return func() tea.Msg {
		return openedMsg{URL: url, Err: open(url)}
	}
}

func (m Model) saveCmd(doc Document) tea.Cmd {
	if m.save == nil {
		return nil
	}
	save := m.save
	return func() tea.Msg {
		return savedMsg{Name: doc.Name, Err: save(doc)}
	}
}

func (m Model) statusLine() string {
	if len(m.docs) == 0 {
		return m.styles.Muted.Render("no documents")
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.docs[m.current].Name))
	if len(m.docs) > 1 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" [%d/%d]", m.current+1, len(m.docs))))
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %3.f%%", m.Viewport.ScrollPercent()*100)))
	switch {
	case m.err != nil:
		b.WriteString(" ")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		b.WriteString(m.styles.Muted.Render(" " + m.status))
	}
	return b.String()
}
