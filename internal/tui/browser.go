package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/vibetagger/internal/clipboard"
	"github.com/muurk/vibetagger/internal/discovery"
	"github.com/muurk/vibetagger/internal/ui"
)

// ScanFunc browses the network for servers until ctx is done
type ScanFunc func(ctx context.Context) ([]*discovery.Instance, error)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	instances []*discovery.Instance
	err       error
}

// browserKeyMap defines key bindings for the server list
type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Rescan, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Rescan, k.Quit},
	}
}

// scanningKeyMap is shown while a browse is running
type scanningKeyMap struct {
	Quit key.Binding
}

func (k scanningKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Quit} }

func (k scanningKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

// instanceItem wraps an Instance for bubbles/list
type instanceItem struct {
	instance *discovery.Instance
}

func (i instanceItem) FilterValue() string {
	return i.instance.Name + " " + i.instance.IP
}

func (i instanceItem) Title() string { return i.instance.Name }

func (i instanceItem) Description() string { return i.instance.BaseURL() }

// instanceDelegate renders one server as a card
type instanceDelegate struct {
	width int
}

func (d instanceDelegate) Height() int { return 6 }

func (d instanceDelegate) Spacing() int { return 1 }

func (d instanceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d instanceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(instanceItem)
	if !ok {
		return
	}
	inst := it.instance
	selected := index == m.Index()

	var b strings.Builder
	if selected {
		b.WriteString(ui.SelectedCaptionStyle.Render(ui.SelectedMarker + " " + inst.Name))
	} else {
		b.WriteString("  " + inst.Name)
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  URL:     %s\n", inst.BaseURL()))
	b.WriteString(fmt.Sprintf("  Version: %s\n", orUnknown(inst.GetMetadata("version"))))
	b.WriteString(fmt.Sprintf("  Model:   %s", orUnknown(inst.GetMetadata("model"))))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.MutedColor).
		Padding(0, 1).
		Width(max(ui.MinTerminalWidth, d.width) - 6)
	if selected {
		cardStyle = cardStyle.BorderForeground(ui.AccentColor)
	}

	fmt.Fprint(w, cardStyle.Render(b.String()))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// BrowserModel is the interactive `discover` screen: a timed mDNS browse
// followed by a list of servers. Choosing one copies its URL.
type BrowserModel struct {
	scan    ScanFunc
	timeout time.Duration
	clip    clipboard.Writer

	scanning  bool
	scanStart time.Time
	err       error
	selected  *discovery.Instance
	notice    string

	list     list.Model
	spinner  spinner.Model
	progress progress.Model
	help     help.Model

	keys         browserKeyMap
	scanningKeys scanningKeyMap

	width  int
	height int
}

// NewBrowser creates the discovery screen. Each browse lasts timeout.
func NewBrowser(scan ScanFunc, timeout time.Duration, clip clipboard.Writer) BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	width, height := ui.GetTerminalSize()

	l := list.New([]list.Item{}, instanceDelegate{width: width}, 0, 0)
	l.Title = "Vibe-Tagger servers"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle

	return BrowserModel{
		scan:     scan,
		timeout:  timeout,
		clip:     clip,
		list:     l,
		spinner:  s,
		progress: bar,
		help:     help.New(),
		keys: browserKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Select: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "copy URL"),
			),
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		scanningKeys: scanningKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		width:  width,
		height: height,
	}
}

// Init starts the first browse
func (m BrowserModel) Init() tea.Cmd {
	return m.startScan()
}

func (m BrowserModel) startScan() tea.Cmd {
	scan, timeout := m.scan, m.timeout
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			instances, err := scan(ctx)
			return scanCompleteMsg{instances: instances, err: err}
		},
		m.spinner.Tick,
	)
}

// Update implements tea.Model
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetDelegate(instanceDelegate{width: msg.Width})
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case scanStartMsg:
		m.scanning = true
		m.scanStart = time.Now()
		return m, nil

	case scanCompleteMsg:
		m.scanning = false
		m.err = msg.err
		items := make([]list.Item, len(msg.instances))
		for i, inst := range msg.instances {
			items[i] = instanceItem{instance: inst}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if !m.scanning {
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

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scanning {
		if key.Matches(msg, m.scanningKeys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Rescan):
		m.err = nil
		m.selected = nil
		return m, tea.Batch(m.list.SetItems(nil), m.startScan())

	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(instanceItem)
		if !ok {
			return m, nil
		}
		m.selected = item.instance
		if err := m.clip.WriteAll(item.instance.BaseURL()); err != nil {
			m.notice = "Could not copy the URL: " + err.Error()
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m BrowserModel) View() string {
	var content, helpText string

	switch {
	case m.scanning:
		content = m.viewScanning()
		helpText = m.help.View(m.scanningKeys)
	case m.err != nil:
		content = RenderError("Discovery failed: "+m.err.Error()) + "\n\n" + browseTips()
		helpText = m.help.View(m.keys)
	case len(m.list.Items()) == 0:
		content = lipgloss.NewStyle().Foreground(ui.WarningColor).Bold(true).Render("⚠ No servers found on your network") + "\n\n" + browseTips()
		helpText = m.help.View(m.keys)
	default:
		content = m.list.View()
		if m.notice != "" {
			content += "\n" + RenderError(m.notice)
		}
		helpText = m.help.View(m.keys)
	}

	return RenderApplicationContainer(content, helpText, m.width, m.height)
}

func (m BrowserModel) viewScanning() string {
	elapsed := time.Since(m.scanStart)
	fraction := 0.0
	if m.timeout > 0 {
		fraction = min(1, float64(elapsed)/float64(m.timeout))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(m.spinner.View()+" SEARCHING FOR SERVERS"),
		SubtitleStyle.Render("Browsing "+discovery.ServiceType+" on the local network..."),
		"",
		m.progress.ViewAs(fraction),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", int(elapsed.Seconds()))),
	)
	return lipgloss.Place(max(ui.MinTerminalWidth, m.width)-6, 0, lipgloss.Center, lipgloss.Top, content)
}

func browseTips() string {
	return strings.Join([]string{
		"  Troubleshooting:",
		"    • Start a server with 'vibetagger serve --host 0.0.0.0 --advertise'",
		"    • Check that both machines are on the same network",
		"    • Press r to browse again",
	}, "\n")
}

// Selected returns the server the user chose, or nil
func (m BrowserModel) Selected() *discovery.Instance {
	return m.selected
}

// Browse runs the discovery screen and returns the chosen server (nil when
// the user quit without choosing).
func Browse(ctx context.Context, scan ScanFunc, timeout time.Duration, clip clipboard.Writer) (*discovery.Instance, error) {
	p := tea.NewProgram(NewBrowser(scan, timeout, clip), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(BrowserModel).Selected(), nil
}
