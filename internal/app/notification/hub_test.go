package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radiola/internal/app/playback"
)

type recordingStream struct {
	mu       sync.Mutex
	received []*Notification
	err      error
	block    chan struct{}
}

func (s *recordingStream) Send(n *Notification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, n)
	return s.err
}

func (s *recordingStream) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestHub_JoinPublishLeave(t *testing.T) {
	h := NewHub()
	a := &recordingStream{}
	b := &recordingStream{}

	idA := h.Join(a)
	h.Join(b)
	assert.Equal(t, 2, h.Len())

	first := &Notification{Type: TypeStateChanged, SequenceNo: 7}
	h.Publish(first)
	h.Publish(&Notification{Type: TypeProgress})

	require.Equal(t, 2, a.count())
	assert.Equal(t, 2, b.count())
	assert.Same(t, first, a.received[0], "notifications are delivered as given")

	h.Leave(idA)
	h.Leave("unknown")
	h.Publish(&Notification{Type: TypeProgress})
	assert.Equal(t, 2, a.count())
	assert.Equal(t, 3, b.count())
}

func TestHub_DropsFailingSubscriber(t *testing.T) {
	h := NewHub()
	h.maxFailures = 2

	broken := &recordingStream{err: errors.New("closed")}
	healthy := &recordingStream{}
	h.Join(broken)
	h.Join(healthy)

	h.Publish(&Notification{Type: TypeProgress})
	assert.Equal(t, 2, h.Len(), "one failure is tolerated")

	h.Publish(&Notification{Type: TypeProgress})
	assert.Equal(t, 1, h.Len())

	h.Publish(&Notification{Type: TypeProgress})
	assert.Equal(t, 2, broken.count())
	assert.Equal(t, 3, healthy.count())
}

func TestHub_FailuresResetOnSuccess(t *testing.T) {
	h := NewHub()
	h.maxFailures = 2

	s := &recordingStream{err: errors.New("full")}
	h.Join(s)
	h.Publish(&Notification{Type: TypeProgress})

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	h.Publish(&Notification{Type: TypeProgress})

	s.mu.Lock()
	s.err = errors.New("full")
	s.mu.Unlock()
	h.Publish(&Notification{Type: TypeProgress})
	assert.Equal(t, 1, h.Len())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	h.sendTimeout = 20 * time.Millisecond

	slow := &recordingStream{block: make(chan struct{})}
	fast := &recordingStream{}
	h.Join(slow)
	h.Join(fast)

	done := make(chan struct{})
	go func() {
		h.Publish(&Notification{Type: TypeProgress})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
	assert.Equal(t, 1, fast.count())
	close(slow.block)
}

func TestHub_Deliver(t *testing.T) {
	h := NewHub()
	s := &recordingStream{}
	id := h.Join(s)

	require.NoError(t, h.Deliver(id, &Notification{Type: TypeInitialState}))
	assert.ErrorIs(t, h.Deliver("unknown", &Notification{Type: TypeInitialState}), ErrUnknownSubscriber)
	assert.Equal(t, 1, s.count())

	h.Close()
	assert.Zero(t, h.Len())
}

func TestChanStream(t *testing.T) {
	s := NewChanStream(1)
	require.NoError(t, s.Send(&Notification{Type: TypeProgress}))
	assert.ErrorIs(t, s.Send(&Notification{Type: TypeProgress}), ErrStreamFull)

	n := <-s.C()
	assert.Equal(t, TypeProgress, n.Type)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeTrackChanged, TypeOf(playback.EventTrackChanged))
	assert.Equal(t, TypeViewChanged, TypeOf(playback.EventViewChanged))
	assert.Equal(t, TypeError, TypeOf(playback.EventError))
}
