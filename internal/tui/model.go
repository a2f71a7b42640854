package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/clipboard"
	"github.com/muurk/vibetagger/internal/ingest"
	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/ui"
)

// transitionMsg is delivered once an asynchronous controller operation has
// been applied (or discarded).
type transitionMsg struct {
	// path is set when the operation was an image selection
	path string
}

// Model is the Bubble Tea model for the interactive front-end. It renders
// the controller state and turns key presses into controller operations.
type Model struct {
	ctx        context.Context
	controller *app.Controller
	clip       clipboard.Writer

	state      app.State
	loadedPath string // path of the image currently held by the controller
	cursor     int    // selected caption
	notice     string // transient confirmation (e.g., "Caption copied")

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	inputKeys     inputKeyMap
	analyzingKeys analyzingKeyMap
	resultKeys    resultKeyMap

	width  int
	height int
}

// New creates the TUI model. ctx bounds every analysis the TUI dispatches.
func New(ctx context.Context, controller *app.Controller, clip clipboard.Writer) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/photo.jpg"
	ti.Prompt = "Image: "
	ti.CharLimit = 4096
	ti.Width = 50
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	width, height := ui.GetTerminalSize()

	return Model{
		ctx:           ctx,
		controller:    controller,
		clip:          clip,
		state:         controller.State(),
		input:         ti,
		spinner:       s,
		help:          help.New(),
		inputKeys:     newInputKeyMap(),
		analyzingKeys: newAnalyzingKeyMap(),
		resultKeys:    newResultKeyMap(),
		width:         width,
		height:        height,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(20, msg.Width-20)
		return m, nil

	case transitionMsg:
		m.refresh()
		if msg.path != "" && m.state.HasImage() && m.state.Error == "" {
			m.loadedPath = msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// refresh pulls the latest controller snapshot
func (m *Model) refresh() {
	m.state = m.controller.State()
	if m.state.Result == nil || m.cursor >= len(m.state.Result.Captions) {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.state.Phase() {
	case app.PhaseAnalyzing:
		return m.handleAnalyzingKey(msg)
	case app.PhaseResolved:
		return m.handleResultKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.inputKeys.Reset):
		return m.reset(), nil

	case key.Matches(msg, m.inputKeys.Submit):
		path := strings.TrimSpace(m.input.Value())
		if path != "" && path != m.loadedPath {
			return m.selectImage(path)
		}
		return m.generate()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleAnalyzingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.analyzingKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.analyzingKeys.Reset):
		return m.reset(), nil
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := m.state.Result

	switch {
	case key.Matches(msg, m.resultKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.resultKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.resultKeys.Down):
		if m.cursor < len(result.Captions)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.resultKeys.CopyCaption):
		if m.cursor < len(result.Captions) {
			c := result.Captions[m.cursor]
			m.notice = m.copyNotice(clipboard.CopyCaption(m.clip, c), fmt.Sprintf("%s caption copied", c.Style))
		}

	case key.Matches(msg, m.resultKeys.CopyHashtags):
		m.notice = m.copyNotice(clipboard.CopyHashtags(m.clip, result), "Hashtags copied")

	case key.Matches(msg, m.resultKeys.Regenerate):
		return m.generate()

	case key.Matches(msg, m.resultKeys.Reset):
		return m.reset(), nil
	}

	return m, nil
}

func (m Model) copyNotice(err error, ok string) string {
	if err != nil {
		logging.Warn("Clipboard write failed", zap.Error(err))
		if errors.Is(err, clipboard.ErrUnsupported) {
			return "Clipboard unavailable on this system"
		}
		return "Copy failed"
	}
	return ok
}

func (m Model) selectImage(path string) (tea.Model, tea.Cmd) {
	done, err := m.controller.SelectImage(ingest.NewLocalFile(path))
	m.refresh()
	if err != nil {
		// The controller already holds the user-facing message, except
		// for the in-flight refusal which cannot happen from this phase.
		return m, nil
	}
	return m, waitFor(done, path)
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	done := m.controller.Generate(m.ctx)
	if done == nil {
		return m, nil
	}
	m.refresh()
	return m, tea.Batch(waitFor(done, ""), m.spinner.Tick)
}

func (m Model) reset() Model {
	m.controller.Reset()
	m.refresh()
	m.loadedPath = ""
	m.cursor = 0
	m.input.Reset()
	m.input.Focus()
	return m
}

// waitFor blocks until done is closed and reports the transition
func waitFor(done <-chan struct{}, path string) tea.Cmd {
	return func() tea.Msg {
		<-done
		return transitionMsg{path: path}
	}
}

// View implements tea.Model
func (m Model) View() string {
	var (
		content string
		helpMsg string
	)

	switch m.state.Phase() {
	case app.PhaseAnalyzing:
		content = m.viewAnalyzing()
		helpMsg = m.help.View(m.analyzingKeys)
	case app.PhaseResolved:
		content = m.viewResult()
		helpMsg = m.help.View(m.resultKeys)
	default:
		content = m.viewInput()
		helpMsg = m.help.View(m.inputKeys)
	}

	return RenderApplicationContainer(content, helpMsg, m.width, m.height)
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Drop a photo, get the vibe"))
	b.WriteString("\n")
	b.WriteString(InputBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if m.state.HasImage() {
		b.WriteString(ImageInfoStyle.Render(fmt.Sprintf("✓ Loaded %s (%s)", m.loadedPath, ingest.MediaType(m.state.Image))))
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render("Press enter to decode the vibe."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(SubtitleStyle.Render("Type the path of a JPG or PNG and press enter."))
		b.WriteString("\n\n")
	}

	if m.state.Error != "" {
		b.WriteString(RenderError(m.state.Error))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewAnalyzing() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Decoding the vibe"))
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" Consulting the algorithm...")
	b.WriteString("\n\n")
	if m.loadedPath != "" {
		b.WriteString(SubtitleStyle.Render(m.loadedPath))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	b.WriteString(ui.RenderVibe(m.state.Result, m.cursor, m.width-6))
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(RenderError(m.state.Error))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(NoticeStyle.Render("✓ " + m.notice))
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the snapshot the model last rendered
func (m Model) State() app.State {
	return m.state
}

// Run starts the TUI on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, controller *app.Controller, clip clipboard.Writer) error {
	p := tea.NewProgram(New(ctx, controller, clip), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
