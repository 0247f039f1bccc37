// Package notification fans session notifications out to subscribers.
package notification

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// ErrUnknownSubscriber is returned when delivering to an id that is not joined.
var ErrUnknownSubscriber = errors.New("unknown subscriber")

const (
	defaultSendTimeout = 500 * time.Millisecond
	defaultMaxFailures = 5
)

// Stream receives notifications for one subscriber.
type Stream interface {
	Send(*Notification) error
}

type subscriber struct {
	id       string
	stream   Stream
	failures int // Consecutive failed sends, guarded by Hub.mu
}

// Hub delivers notifications to joined streams. Notifications are sent as
// given; callers stamp sequence numbers and timestamps. A subscriber whose
// sends keep failing is dropped.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	sendTimeout time.Duration
	maxFailures int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
		sendTimeout: defaultSendTimeout,
		maxFailures: defaultMaxFailures,
	}
}

// Join registers a stream and returns its subscriber id.
func (h *Hub) Join(stream Stream) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.subscribers[id] = &subscriber{id: id, stream: stream}
	return id
}

// Leave removes a subscriber. Unknown ids are ignored.
func (h *Hub) Leave(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, id)
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Deliver sends n to a single subscriber and waits for the stream.
func (h *Hub) Deliver(id string, n *Notification) error {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	h.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrUnknownSubscriber, "id=%s", id)
	}

	err := sub.stream.Send(n)
	h.record(sub, err)
	return err
}

// Publish sends n to every subscriber in parallel. A send that exceeds the
// timeout counts as a failure and does not hold up the others.
func (h *Hub) Publish(n *Notification) {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *subscriber) {
			defer wg.Done()
			h.record(sub, h.sendWithTimeout(sub, n))
		}(sub)
	}
	wg.Wait()
}

func (h *Hub) sendWithTimeout(sub *subscriber, n *Notification) error {
	result := make(chan error, 1)
	go func() {
		result <- sub.stream.Send(n)
	}()

	timer := time.NewTimer(h.sendTimeout)
	defer timer.Stop()

	select {
	case err := <-result:
		return err
	case <-timer.C:
		return errors.Newf("send timed out after %v", h.sendTimeout)
	}
}

func (h *Hub) record(sub *subscriber, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err == nil {
		sub.failures = 0
		return
	}

	sub.failures++
	zlog.Debug().Err(err).Msgf("notification: send failed: subscriber=%s failures=%d", sub.id, sub.failures)
	if sub.failures >= h.maxFailures {
		if _, ok := h.subscribers[sub.id]; ok {
			delete(h.subscribers, sub.id)
			zlog.Info().Msgf("notification: dropped subscriber: id=%s", sub.id)
		}
	}
}

// Close removes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = make(map[string]*subscriber)
}
