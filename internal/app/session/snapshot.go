package session

import (
	"time"

	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/app/playback"
	"github.com/osa030/radiola/internal/app/session/state"
)

// Entry is one presented list entry.
type Entry struct {
	Position    int      `json:"position"`
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags,omitempty"`
	Highlighted bool     `json:"highlighted"`
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	Phase     state.Phase     `json:"phase"`
	Message   string          `json:"message,omitempty"`
	Criteria  filter.Criteria `json:"criteria"`
	Link      string          `json:"link,omitempty"`
	Status    playback.Status `json:"status"`
	Entries   []Entry         `json:"entries"`
}

// snapshot must run on the loop.
func (m *Manager) snapshot() Snapshot {
	snap := Snapshot{
		SessionID: m.stateMgr.GetSessionID(),
		Phase:     m.stateMgr.GetPhase(),
		Criteria:  m.stateMgr.GetCriteria(),
		Link:      m.stateMgr.GetLink(),
		Status:    idleStatus(),
		Entries:   []Entry{},
	}

	if m.playback != nil {
		snap.Status = m.playback.Status()
		cat := m.playback.Catalog()
		ind := m.playback.Indicator()
		for pos, idx := range m.playback.View().Indices() {
			t, _ := cat.At(idx)
			snap.Entries = append(snap.Entries, Entry{
				Position:    pos,
				Index:       idx,
				Title:       t.Title,
				Genre:       t.Genre,
				Tags:        t.Tags,
				Highlighted: ind.IsHighlighted(pos),
			})
		}
	}

	snap.Message = m.phaseMessage(len(snap.Entries))
	return snap
}

func (m *Manager) closedSnapshot() Snapshot {
	return Snapshot{
		SessionID: m.stateMgr.GetSessionID(),
		Phase:     state.PhaseClosed,
		Status:    idleStatus(),
		Entries:   []Entry{},
	}
}

// phaseMessage returns the placeholder text for the list area, if any.
func (m *Manager) phaseMessage(entries int) string {
	switch m.stateMgr.GetPhase() {
	case state.PhaseLoading:
		return m.config.GetMessage("loading")
	case state.PhaseFailed:
		return m.config.GetMessage("load_error")
	case state.PhaseReady:
		if entries == 0 {
			return m.config.GetMessage("empty_view")
		}
	}
	return ""
}

// status must run on the loop.
func (m *Manager) status() *playback.Status {
	if m.playback == nil {
		s := idleStatus()
		return &s
	}
	s := m.playback.Status()
	return &s
}

// newNotification stamps the next sequence number. It must run on the loop.
func (m *Manager) newNotification(t notification.Type, status *playback.Status) *notification.Notification {
	entries := 0
	if m.playback != nil {
		entries = m.playback.View().Len()
	}
	m.seq++
	return &notification.Notification{
		Type:       t,
		SequenceNo: m.seq,
		Timestamp:  time.Now(),
		Phase:      m.stateMgr.GetPhase().String(),
		Link:       m.stateMgr.GetLink(),
		Status:     status,
		Message:    m.phaseMessage(entries),
	}
}

func idleStatus() playback.Status {
	return playback.Status{
		CurrentIndex: -1,
		State:        playback.StateIdle,
		VolumeLevel:  playback.VolumeHigh,
		Highlighted:  []int{},
		View:         []int{},
	}
}
