package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/vibetagger/internal/discovery"
)

func fakeScan(instances []*discovery.Instance, err error) ScanFunc {
	return func(ctx context.Context) ([]*discovery.Instance, error) {
		return instances, err
	}
}

// sendBrowser is send for BrowserModel. It reports whether a command asked
// the program to quit.
func sendBrowser(t *testing.T, m BrowserModel, msg tea.Msg) (BrowserModel, bool) {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(BrowserModel)
	quit := isQuit(cmd)
	for _, next := range run(t, cmd) {
		var q bool
		m, q = sendBrowser(t, m, next)
		quit = quit || q
	}
	return m, quit
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newTestBrowser(t *testing.T, scan ScanFunc) (BrowserModel, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	m := NewBrowser(scan, time.Second, clip)
	m, _ = sendBrowser(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	for _, msg := range run(t, m.Init()) {
		m, _ = sendBrowser(t, m, msg)
	}
	return m, clip
}

var studio = &discovery.Instance{
	Name:     "studio",
	IP:       "192.168.1.20",
	Port:     8080,
	Metadata: map[string]string{"version": "v1.2.0", "model": "gemini-3-flash-preview"},
}

var kitchen = &discovery.Instance{
	Name: "kitchen",
	IP:   "192.168.1.21",
	Port: 9000,
}

func TestBrowser_ListsServers(t *testing.T) {
	m, _ := newTestBrowser(t, fakeScan([]*discovery.Instance{kitchen, studio}, nil))

	if m.scanning {
		t.Fatal("still scanning after the scan completed")
	}
	view := m.View()
	for _, want := range []string{"kitchen", "studio", "http://192.168.1.20:8080", "v1.2.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBrowser_SelectCopiesURL(t *testing.T) {
	m, clip := newTestBrowser(t, fakeScan([]*discovery.Instance{kitchen, studio}, nil))

	m, _ = sendBrowser(t, m, runeKey('j'))
	m, quit := sendBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !quit {
		t.Error("selecting a server should quit")
	}
	if m.Selected() != studio {
		t.Errorf("Selected() = %v, want studio", m.Selected())
	}
	if clip.text != "http://192.168.1.20:8080" {
		t.Errorf("clipboard = %q", clip.text)
	}
}

func TestBrowser_CopyFailureStays(t *testing.T) {
	m, clip := newTestBrowser(t, fakeScan([]*discovery.Instance{studio}, nil))
	clip.err = errors.New("no clipboard")
	m.clip = clip

	m, quit := sendBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if quit {
		t.Error("a failed copy should not quit")
	}
	if !strings.Contains(m.View(), "Could not copy the URL") {
		t.Error("View() should report the copy failure")
	}
}

func TestBrowser_Empty(t *testing.T) {
	m, _ := newTestBrowser(t, fakeScan(nil, nil))

	if !strings.Contains(m.View(), "No servers found") {
		t.Error("View() should report that nothing was found")
	}

	_, quit := sendBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if quit {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestBrowser_ScanError(t *testing.T) {
	m, _ := newTestBrowser(t, fakeScan(nil, errors.New("no multicast interface")))

	if !strings.Contains(m.View(), "no multicast interface") {
		t.Error("View() should show the scan error")
	}
}

func TestBrowser_Rescan(t *testing.T) {
	calls := 0
	scan := func(ctx context.Context) ([]*discovery.Instance, error) {
		calls++
		if calls == 1 {
			return nil, nil
		}
		return []*discovery.Instance{studio}, nil
	}

	m, _ := newTestBrowser(t, scan)
	m, _ = sendBrowser(t, m, runeKey('r'))

	if calls != 2 {
		t.Fatalf("scan calls = %d, want 2", calls)
	}
	if !strings.Contains(m.View(), "studio") {
		t.Error("View() should list the server found by the rescan")
	}
}

func TestBrowser_ScanHasDeadline(t *testing.T) {
	var deadline time.Time
	scan := func(ctx context.Context) ([]*discovery.Instance, error) {
		deadline, _ = ctx.Deadline()
		return nil, nil
	}

	newTestBrowser(t, scan)
	if deadline.IsZero() {
		t.Error("scan context should carry the browse timeout")
	}
}

func TestBrowser_Quit(t *testing.T) {
	m, _ := newTestBrowser(t, fakeScan(nil, nil))

	_, quit := sendBrowser(t, m, runeKey('q'))
	if !quit {
		t.Error("q should quit")
	}
}
