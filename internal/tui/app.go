// Package tui provides the terminal player.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/app/session"
	"github.com/osa030/radiola/internal/app/share"
	"github.com/osa030/radiola/internal/domain/track"
)

// Session is the part of the session manager the player drives.
type Session interface {
	Snapshot() session.Snapshot
	Activate(i int) session.Snapshot
	Toggle() session.Snapshot
	Next() session.Snapshot
	Previous() session.Snapshot
	Seek(fraction float64) session.Snapshot
	SetVolume(level float64) session.Snapshot
	ToggleMute() session.Snapshot
	Search(input string) (session.Snapshot, error)
	SetCriteria(c filter.Criteria) (session.Snapshot, error)
	ShareURL(i int) (string, error)
	Share(ctx context.Context, i int) (share.Result, error)
	Track(i int) (track.Track, bool)
	Message(code string) string
	Subscribe(stream notification.Stream) (string, error)
	Unsubscribe(id string)
}

// Saver saves catalog files locally.
type Saver interface {
	Save(ctx context.Context, file string) (string, error)
}

const (
	seekStep   = 0.05
	volumeStep = 0.1

	// header, search, now-playing panel, status and help lines
	chromeHeight = 9
)

// Model is the main Bubble Tea model for the player
type Model struct {
	// Services
	session Session
	saver   Saver
	stream  *notification.ChanStream

	// UI components
	search   textinput.Model
	progress progress.Model
	help     help.Model

	// Data
	snap session.Snapshot

	// UI state
	cursor      int
	offset      int
	searching   bool
	qrURL       string
	qrCode      string
	statusMsg   string
	statusIsErr bool

	// Dimensions
	width  int
	height int
}

// New creates the player model. stream must already be subscribed to the
// session; its first message is the initial state.
func New(sess Session, saver Saver, stream *notification.ChanStream) Model {
	ti := textinput.New()
	ti.Placeholder = "genre:rock tag:live playlist:\"road trip\" or title words"
	ti.CharLimit = 200
	ti.Prompt = "/ "
	ti.PromptStyle = AccentStyle
	ti.PlaceholderStyle = DimStyle

	return Model{
		session:  sess,
		saver:    saver,
		stream:   stream,
		search:   ti,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		snap:     sess.Snapshot(),
		width:    80,
		height:   24,
	}
}

// Run subscribes to the session and runs the player until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, sess Session, saver Saver) error {
	stream := notification.NewChanStream(64)
	id, err := sess.Subscribe(stream)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to session")
	}
	defer sess.Unsubscribe(id)

	p := tea.NewProgram(New(sess, saver, stream), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "player exited")
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.stream == nil {
		return nil
	}
	return WaitNotificationCmd(m.stream)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-24, 10)
		m.search.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case NotificationMsg:
		m.applyNotification(msg.Notification)
		return m, WaitNotificationCmd(m.stream)

	case SharedMsg:
		m.setStatus(m.session.Message("shared")+" "+msg.Result.URL, false)
		return m, ClearStatusCmd(5 * time.Second)

	case QRMsg:
		m.qrURL = msg.URL
		m.qrCode = msg.Code
		return m, nil

	case DownloadedMsg:
		m.setStatus(m.session.Message("downloaded")+" "+msg.Path, false)
		return m, ClearStatusCmd(5 * time.Second)

	case ErrMsg:
		zlog.Warn().Err(msg.Err).Msgf("tui: %s", msg.Context)
		m.setStatus(msg.Error(), true)
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) applyNotification(n *notification.Notification) {
	if n == nil {
		return
	}

	// Ticks only move the progress bar; everything else may change the list.
	if n.Type == notification.TypeProgress && n.Status != nil {
		m.snap.Status = *n.Status
		return
	}

	m.snap = m.session.Snapshot()
	if n.Type == notification.TypeTrackChanged {
		m.followCurrent()
	}
	m.clampCursor()
}

// followCurrent moves the cursor onto the now-playing entry when it is
// presented.
func (m *Model) followCurrent() {
	for _, e := range m.snap.Entries {
		if e.Index == m.snap.Status.CurrentIndex {
			m.cursor = e.Position
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.snap.Entries)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) listHeight() int {
	return max(m.height-chromeHeight, 1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusIsErr = isErr
}

// cursorEntry returns the entry under the cursor.
func (m Model) cursorEntry() (session.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Entries) {
		return session.Entry{}, false
	}
	return m.snap.Entries[m.cursor], true
}
