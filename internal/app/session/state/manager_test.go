package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/radiola/internal/app/filter"
)

func TestManager_Phases(t *testing.T) {
	m := New("session-1")
	assert.Equal(t, "session-1", m.GetSessionID())
	assert.Equal(t, PhaseLoading, m.GetPhase())
	assert.False(t, m.IsReady())

	m.SetPhase(PhaseReady)
	assert.True(t, m.IsReady())

	loadErr := errors.New("404")
	m.Fail(loadErr)
	assert.Equal(t, PhaseFailed, m.GetPhase())
	assert.Equal(t, loadErr, m.LoadError())
	assert.False(t, m.IsReady())
}

func TestManager_Addressing(t *testing.T) {
	m := New("s")
	m.SetCriteria(filter.Criteria{Tag: "live"})
	m.SetLink("https://x/?tag=live")

	assert.Equal(t, filter.Criteria{Tag: "live"}, m.GetCriteria())
	assert.Equal(t, "https://x/?tag=live", m.GetLink())
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseLoading, "loading"},
		{PhaseReady, "ready"},
		{PhaseFailed, "failed"},
		{PhaseClosed, "closed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.phase.String())
	}
}
