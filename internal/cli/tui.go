package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/pipeline"
	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			MarginLeft(2)
)

// chromeLines is the number of explorer lines that are not tree rows: title,
// blank line, blank line, footer, status.
const chromeLines = 5

const minPageSize = 5

// =============================================================================
// Explorer State
// =============================================================================

type explorerState int

const (
	stateInitial explorerState = iota
	stateChoosingInitialDocument
	stateExploringDocument
	stateChoosingNewDocument
)

func (s explorerState) choosing() bool {
	return s == stateChoosingInitialDocument || s == stateChoosingNewDocument
}

// exploration is everything shown for one successfully imported document.
type exploration struct {
	doc    *scene.Document
	rows   []tree.Row[scene.NodeInfo]
	stats  scene.Statistics
	cursor int
	offset int
}

// importFunc opens a document and flattens its scene graph.
type importFunc func(ctx context.Context, path string) (*scene.Document, []tree.Row[scene.NodeInfo], error)

// importedMsg reports the outcome of an asynchronous import.
type importedMsg struct {
	path string
	doc  *scene.Document
	rows []tree.Row[scene.NodeInfo]
	err  error
}

// =============================================================================
// explorerModel - Interactive scene graph explorer
// =============================================================================

// explorerModel is the bubbletea model for the interactive explorer.
type explorerModel struct {
	ctx    context.Context
	logger *log.Logger
	load   importFunc

	state explorerState
	prev  explorerState

	picker  filepicker.Model
	current *exploration
	loading string // path being imported, "" when idle
	preload string

	status    string
	statusErr bool

	pageSize  int
	fixedPage bool
}

func newExplorer(ctx context.Context, logger *log.Logger, cfg ExplorerConfig, load importFunc, path string) explorerModel {
	fp := filepicker.New()
	fp.AllowedTypes = scene.Extensions
	fp.AutoHeight = true
	fp.CurrentDirectory = cfg.StartDir
	if fp.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			fp.CurrentDirectory = wd
		}
	}
	// esc cancels picking instead of leaving the directory.
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)

	m := explorerModel{
		ctx:      ctx,
		logger:   logger,
		load:     load,
		picker:   fp,
		preload:  path,
		pageSize: cfg.PageSize,
	}
	m.loading = path
	if cfg.PageSize > 0 {
		m.fixedPage = true
	} else {
		m.pageSize = 20
	}
	return m
}

func (m explorerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.preload != "" {
		cmds = append(cmds, m.importCmd(m.preload))
	}
	return tea.Batch(cmds...)
}

func (m explorerModel) importCmd(path string) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		doc, rows, err := load(ctx, path)
		return importedMsg{path: path, doc: doc, rows: rows, err: err}
	}
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.fixedPage {
			m.pageSize = max(msg.Height-chromeLines, minPageSize)
			m.clampScroll()
		}
	case importedMsg:
		return m.finishImport(msg), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state.choosing() {
			return m.updatePicking(msg)
		}
		return m.updateBrowsing(msg)
	}

	// Directory listings and resizes belong to the picker.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m explorerModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, explorerKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, explorerKeys.Open):
		m.prev = m.state
		if m.state == stateInitial {
			m.state = stateChoosingInitialDocument
		} else {
			m.state = stateChoosingNewDocument
		}
		m.status = ""
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}
	e := m.current
	last := len(e.rows) - 1
	switch {
	case key.Matches(msg, explorerKeys.Up):
		e.cursor--
	case key.Matches(msg, explorerKeys.Down):
		e.cursor++
	case key.Matches(msg, explorerKeys.PageUp):
		e.cursor -= m.pageSize
	case key.Matches(msg, explorerKeys.PageDown):
		e.cursor += m.pageSize
	case key.Matches(msg, explorerKeys.Top):
		e.cursor = 0
	case key.Matches(msg, explorerKeys.Bottom):
		e.cursor = last
	}
	e.cursor = max(0, min(e.cursor, last))
	m.clampScroll()
	return m, nil
}

func (m explorerModel) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, explorerKeys.Cancel) {
		m.state = m.prev
		return m, nil
	}
	if m.loading != "" {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.status = ""
		m.loading = path
		return m, m.importCmd(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setError(fmt.Sprintf("%s is not a glTF document", filepath.Base(path)))
	}
	return m, cmd
}

// finishImport applies an import outcome. A failed import keeps the document
// that was shown before and returns to the state the picker was opened from.
func (m explorerModel) finishImport(msg importedMsg) explorerModel {
	m.loading = ""
	if msg.err != nil {
		m.logger.Warn("import failed", "path", msg.path, "err", msg.err)
		m.setError(fmt.Sprintf("Could not open %s: %s", filepath.Base(msg.path), errors.UserMessage(msg.err)))
		if m.state.choosing() {
			m.state = m.prev
		}
		return m
	}

	m.current = &exploration{
		doc:   msg.doc,
		rows:  msg.rows,
		stats: scene.Stats(msg.doc.GLTF),
	}
	m.state = stateExploringDocument
	m.status, m.statusErr = "", false
	return m
}

func (m *explorerModel) setError(s string) {
	m.status, m.statusErr = s, true
}

// clampScroll keeps the cursor row on the visible page.
func (m *explorerModel) clampScroll() {
	e := m.current
	if e == nil {
		return
	}
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+m.pageSize {
		e.offset = e.cursor - m.pageSize + 1
	}
	e.offset = max(0, min(e.offset, len(e.rows)-m.pageSize))
}

// =============================================================================
// Views
// =============================================================================

func (m explorerModel) View() string {
	var b strings.Builder
	switch {
	case m.state.choosing():
		m.viewPicker(&b)
	case m.state == stateExploringDocument && m.current != nil:
		m.viewExploring(&b)
	default:
		m.viewWelcome(&b)
	}

	b.WriteString("\n")
	switch {
	case m.loading != "":
		b.WriteString(StyleHighlight.Render("Opening " + filepath.Base(m.loading) + "..."))
	case m.status != "" && m.statusErr:
		b.WriteString(StyleError.Render(m.status))
	case m.status != "":
		b.WriteString(m.status)
	}
	return b.String()
}

func (m explorerModel) viewWelcome(b *strings.Builder) {
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("\n\n")
	b.WriteString("Explore the scene graph of glTF documents (.gltf, .glb).\n\n")
	b.WriteString(help(explorerKeys.Open, explorerKeys.Quit))
	b.WriteString("\n")
}

func (m explorerModel) viewPicker(b *strings.Builder) {
	b.WriteString(StyleTitle.Render("Open a glTF document"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(help(m.picker.KeyMap.Select, m.picker.KeyMap.Back, explorerKeys.Cancel))
	b.WriteString("\n")
}

func (m explorerModel) viewExploring(b *strings.Builder) {
	e := m.current
	b.WriteString(StyleTitle.Render(e.doc.Name() + " - " + appName))
	b.WriteString("\n\n")

	end := min(e.offset+m.pageSize, len(e.rows))
	lines := make([]string, 0, end-e.offset)
	for i := e.offset; i < end; i++ {
		line := tree.Indent(e.rows[i], scene.NodeInfo.Label)
		if i == e.cursor {
			lines = append(lines, listSelectedStyle.Render("▸ "+line))
		} else {
			lines = append(lines, listNormalStyle.Render("  "+line))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, listDimStyle.Render("  (no scenes)"))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(lines, "\n"),
		panelStyle.Render(statsPanel(e.stats)),
	))
	b.WriteString("\n\n")

	pos := 0
	if len(e.rows) > 0 {
		pos = e.cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  ", pos, len(e.rows))))
	b.WriteString(help(explorerKeys.Up, explorerKeys.Down, explorerKeys.Open, explorerKeys.Quit))
	b.WriteString("\n")
}

func statsPanel(s scene.Statistics) string {
	fields := s.Fields()
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = styleKey.Render(f.Label) + StyleNumber.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Program
// =============================================================================

// runExplorer starts the interactive explorer, pre-loading path when it is
// not empty. Log output goes to a file in the XDG state directory while the
// terminal is taken over.
func (c *CLI) runExplorer(ctx context.Context, path string) error {
	logger, closeLog := c.explorerLogger()
	defer closeLog()

	runner := pipeline.NewRunner(nil, logger)
	load := func(ctx context.Context, path string) (*scene.Document, []tree.Row[scene.NodeInfo], error) {
		doc, err := runner.Import(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return doc, runner.Outline(ctx, doc), nil
	}

	m := newExplorer(ctx, logger, c.Config.Explorer, load, path)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}

func (c *CLI) explorerLogger() (*log.Logger, func()) {
	path, err := xdg.StateFile(filepath.Join(appName, "explorer.log"))
	if err != nil {
		return newLogger(io.Discard, c.Logger.GetLevel()), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard, c.Logger.GetLevel()), func() {}
	}
	c.Logger.Debug("explorer log", "path", path)
	return newLogger(f, c.Logger.GetLevel()), func() { f.Close() }
}
