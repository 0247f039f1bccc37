package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The QR overlay swallows one key
	if m.qrCode != "" {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.qrCode = ""
		m.qrURL = ""
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.cursor--
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Top):
		m.cursor = 0
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Bottom):
		m.cursor = len(m.snap.Entries) - 1
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Play):
		if e, ok := m.cursorEntry(); ok {
			m.snap = m.session.Activate(e.Index)
		}
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		m.snap = m.session.Toggle()
		m.followCurrent()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Next):
		m.snap = m.session.Next()
		m.followCurrent()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Previous):
		m.snap = m.session.Previous()
		m.followCurrent()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Forward), key.Matches(msg, Keys.Rewind):
		st := m.snap.Status
		if st.Duration <= 0 {
			return m, nil
		}
		step := seekStep
		if key.Matches(msg, Keys.Rewind) {
			step = -seekStep
		}
		fraction := float64(st.Position)/float64(st.Duration) + step
		m.snap = m.session.Seek(min(max(fraction, 0), 1))
		return m, nil

	case key.Matches(msg, Keys.VolUp):
		m.snap = m.session.SetVolume(min(m.snap.Status.Volume+volumeStep, 1))
		return m, nil

	case key.Matches(msg, Keys.VolDown):
		m.snap = m.session.SetVolume(max(m.snap.Status.Volume-volumeStep, 0))
		return m, nil

	case key.Matches(msg, Keys.Mute):
		m.snap = m.session.ToggleMute()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.searching = true
		m.search.SetValue(m.snap.Criteria.String())
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, Keys.Escape):
		if m.snap.Criteria.IsZero() {
			return m, nil
		}
		m.search.SetValue("")
		return m.applySearch("")

	case key.Matches(msg, Keys.Share):
		return m, ShareCmd(m.session, -1)

	case key.Matches(msg, Keys.QR):
		return m, QRCmd(m.session, -1)

	case key.Matches(msg, Keys.Download):
		e, ok := m.cursorEntry()
		if !ok || m.saver == nil {
			return m, nil
		}
		t, ok := m.session.Track(e.Index)
		if !ok {
			return m, nil
		}
		return m, DownloadCmd(m.saver, t.File)
	}

	return m, nil
}

// handleSearchKey edits the search box; the view follows every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m.applySearch("")
	case "ctrl+c":
		return m, tea.Quit
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == prev {
		return m, cmd
	}

	next, searchCmd := m.applySearch(m.search.Value())
	return next, tea.Batch(cmd, searchCmd)
}

func (m Model) applySearch(input string) (tea.Model, tea.Cmd) {
	snap, err := m.session.Search(input)
	if err != nil {
		return m, func() tea.Msg { return ErrMsg{Err: err, Context: "search"} }
	}
	m.snap = snap
	m.cursor = 0
	m.offset = 0
	m.followCurrent()
	m.clampCursor()
	return m, nil
}
