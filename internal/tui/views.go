package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/radiola/internal/app/playback"
	"github.com/osa030/radiola/internal/app/session"
	"github.com/osa030/radiola/internal/app/session/state"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.qrCode != "" {
		return m.renderQR()
	}

	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderList(),
		m.renderNowPlaying(),
		m.renderStatus(),
		m.help.View(Keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := "radiola"
	if n := len(m.snap.Entries); m.snap.Phase == state.PhaseReady {
		title = fmt.Sprintf("radiola · %d songs", n)
	}
	return HeaderStyle.Width(m.width).Render(title)
}

func (m Model) renderSearch() string {
	if m.searching {
		return m.search.View()
	}
	if q := m.snap.Criteria.String(); q != "" {
		return AccentStyle.Render("/ ") + q + DimStyle.Render("  (esc to clear)")
	}
	return DimStyle.Render("/ search")
}

func (m Model) renderList() string {
	rows := m.listHeight()

	if len(m.snap.Entries) == 0 {
		text := m.snap.Message
		style := DimStyle
		if m.snap.Phase == state.PhaseFailed {
			style = ErrorStyle
		}
		return lipgloss.NewStyle().Height(rows).Render(style.Render(text))
	}

	end := min(m.offset+rows, len(m.snap.Entries))
	lines := make([]string, 0, rows)
	for _, e := range m.snap.Entries[m.offset:end] {
		lines = append(lines, m.renderEntry(e))
	}
	return lipgloss.NewStyle().Height(rows).Render(strings.Join(lines, "\n"))
}

func (m Model) renderEntry(e session.Entry) string {
	marker := "  "
	if e.Position == m.cursor {
		marker = CursorChar + " "
	}
	indicator := "  "
	if e.Highlighted {
		indicator = PlayingChar + " "
	}

	genre := ""
	if e.Genre != "" {
		genre = "  " + DimStyle.Render(e.Genre)
	}
	line := marker + indicator + e.Title

	switch {
	case e.Position == m.cursor:
		return CursorItemStyle.Render(line) + genre
	case e.Highlighted:
		return PlayingItemStyle.Render(line) + genre
	default:
		return NormalItemStyle.Render(line) + genre
	}
}

func (m Model) renderNowPlaying() string {
	st := m.snap.Status

	title := DimStyle.Render("nothing playing")
	if st.CurrentIndex >= 0 {
		icon := "⏸"
		if st.Playing {
			icon = "▶"
		}
		title = AccentStyle.Render(icon) + " " + TitleStyle.Render(st.Title)
	}

	fraction := 0.0
	if st.Duration > 0 {
		fraction = float64(st.Position) / float64(st.Duration)
	}
	clock := fmt.Sprintf("%s / %s", playback.FormatTime(st.Position), playback.FormatTime(st.Duration))
	volume := fmt.Sprintf("%s %3.0f%%", st.VolumeLevel.Icon(), st.Volume*100)
	if st.Muted {
		volume = st.VolumeLevel.Icon() + " mute"
	}

	bar := m.progress.ViewAs(min(max(fraction, 0), 1)) + " " + clock + "  " + volume
	return NowPlayingStyle.Width(max(m.width-2, 20)).Render(title + "\n" + bar)
}

func (m Model) renderStatus() string {
	switch {
	case m.statusMsg != "" && m.statusIsErr:
		return ErrorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		return SuccessStyle.Render(m.statusMsg)
	case m.snap.Status.Message != "":
		return ErrorStyle.Render(m.snap.Status.Message)
	default:
		return ""
	}
}

func (m Model) renderQR() string {
	body := m.qrCode + "\n" + m.qrURL + "\n\n" + DimStyle.Render("press any key")
	return QRStyle.Render(body)
}
