// Package session provides the session manager.
//
// A Manager owns one player session: the catalog load lifecycle, the
// Playback Selector and the deep link. Every command is executed on a single
// loop goroutine, so the controller never needs locking.
package session

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radiola/internal/app/deeplink"
	"github.com/osa030/radiola/internal/app/filter"
	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/app/playback"
	"github.com/osa030/radiola/internal/app/session/state"
	"github.com/osa030/radiola/internal/app/share"
	"github.com/osa030/radiola/internal/domain/catalog"
	"github.com/osa030/radiola/internal/domain/track"
	"github.com/osa030/radiola/internal/infra/config"
)

var (
	ErrNotReady       = errors.New("session is not ready")
	ErrClosed         = errors.New("session is closed")
	ErrAlreadyStarted = errors.New("session already started")
	ErrNoSharer       = errors.New("sharing is not configured")
)

// Loader loads the catalog once at session start.
type Loader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*catalog.Catalog, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) (*catalog.Catalog, error) {
	return f(ctx)
}

// MediaFactory creates the media output once the catalog is ready.
// The sink must not be called synchronously from inside Media methods.
type MediaFactory func(sink playback.MediaSink) playback.Media

// Options holds session collaborators.
type Options struct {
	Loader      Loader
	NewMedia    MediaFactory
	Sharer      *share.Sharer // Optional
	InitialLink string        // Applied once, after the catalog is ready
}

// outboxItem is a notification waiting to be delivered. A non-nil stream
// subscribes it first and delivers n to it alone.
type outboxItem struct {
	n      *notification.Notification
	stream notification.Stream
	idCh   chan string
}

// Manager manages the player session.
type Manager struct {
	// Configuration
	config   *config.Config
	policy   playback.Policy
	scheme   deeplink.Scheme
	links    *deeplink.Builder
	settings map[string]map[string]any

	// Components
	stateMgr     *state.Manager
	hub          *notification.Hub
	loader       Loader
	newMedia     MediaFactory
	sharer       *share.Sharer
	initialLink  string

	// Owned by the loop goroutine
	media    playback.Media
	playback *playback.Controller
	seq      uint64 // Last notification sequence number

	catalog atomic.Pointer[catalog.Catalog]

	// Channels
	inbox     chan func()
	outbox    chan outboxItem
	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
	started   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewManager creates a new session manager.
func NewManager(cfg *config.Config, opts Options) (*Manager, error) {
	if opts.Loader == nil {
		return nil, errors.New("catalog loader is required")
	}
	if opts.NewMedia == nil {
		return nil, errors.New("media factory is required")
	}

	policy, err := playback.ParsePolicy(cfg.Playback.Advance, cfg.Playback.Start, cfg.Playback.Indicator)
	if err != nil {
		return nil, errors.Wrap(err, "invalid playback policy")
	}

	scheme := deeplink.Scheme(cfg.Share.Scheme)
	links, err := deeplink.NewBuilder(cfg.Share.BaseURL, scheme)
	if err != nil {
		return nil, errors.Wrap(err, "invalid share settings")
	}

	if err := ValidateFilterConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid filter config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		config:       cfg,
		policy:       policy,
		scheme:       scheme,
		links:        links,
		settings:     cfg.FilterSettings(),
		stateMgr:     state.New(uuid.New().String()),
		hub:          notification.NewHub(),
		loader:       opts.Loader,
		newMedia:     opts.NewMedia,
		sharer:       opts.Sharer,
		initialLink:  opts.InitialLink,
		inbox:        make(chan func(), 64),
		outbox:       make(chan outboxItem, 256),
		ready:        make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}, nil
}

// ValidateFilterConfig validates enabled filter settings against the
// registered filters.
func ValidateFilterConfig(cfg *config.Config) error {
	registry := filter.GetRegistered()

	for filterName, filterCfg := range cfg.Filters {
		if !filterCfg.Enabled {
			continue
		}

		factory, exists := registry[filterName]
		if !exists {
			return errors.Newf("unknown filter: %s", filterName)
		}

		if err := factory().ValidateConfig(filterCfg.Settings); err != nil {
			return errors.Wrapf(err, "filter %s", filterName)
		}
	}

	return nil
}

// Start starts the session loop and the catalog load.
func (m *Manager) Start(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	zlog.Info().Msgf("session: starting: id=%s policy=%s/%s/%s scheme=%s",
		m.stateMgr.GetSessionID(), m.policy.Advance, m.policy.Start, m.policy.Indicator, m.scheme)

	go m.loop()
	go m.broadcastLoop()
	go m.load(ctx)
	return nil
}

// Ready is closed once the catalog load has finished, successfully or not,
// or when the session is closed first.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Done is closed when the session loop has exited.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Close stops the session and releases the media output.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		if m.started.Load() {
			<-m.done
		}
		m.stateMgr.SetPhase(state.PhaseClosed)
		m.readyOnce.Do(func() { close(m.ready) })

		if closer, ok := m.media.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				zlog.Warn().Err(err).Msg("session: failed to close media")
			}
		}
		m.hub.Close()
		zlog.Info().Msgf("session: closed: id=%s", m.stateMgr.GetSessionID())
	})
}

// Phase returns the session phase.
func (m *Manager) Phase() state.Phase {
	return m.stateMgr.GetPhase()
}

// Catalog returns the loaded catalog, or nil before the load completes.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog.Load()
}

// Track returns the track at canonical index i.
func (m *Manager) Track(i int) (track.Track, bool) {
	return m.catalog.Load().At(i)
}

// Scheme returns the deep-link scheme of the session.
func (m *Manager) Scheme() deeplink.Scheme {
	return m.scheme
}

// Message returns the configured user-facing message for code.
func (m *Manager) Message(code string) string {
	return m.config.GetMessage(code)
}

// --- Commands ---

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	var snap Snapshot
	if !m.call(func() { snap = m.snapshot() }) {
		return m.closedSnapshot()
	}
	return snap
}

// Select plays canonical index i. Out-of-range indices are ignored.
func (m *Manager) Select(i int) Snapshot {
	return m.exec(func(c *playback.Controller) { c.Select(i) })
}

// Activate handles list-item activation of canonical index i.
func (m *Manager) Activate(i int) Snapshot {
	return m.exec(func(c *playback.Controller) { c.Activate(i) })
}

// Toggle flips play/pause.
func (m *Manager) Toggle() Snapshot {
	return m.exec(func(c *playback.Controller) { c.Toggle() })
}

// Next advances forward.
func (m *Manager) Next() Snapshot {
	return m.exec(func(c *playback.Controller) { c.Next() })
}

// Previous advances backward.
func (m *Manager) Previous() Snapshot {
	return m.exec(func(c *playback.Controller) { c.Previous() })
}

// Seek moves to fraction (0..1) of the current track.
func (m *Manager) Seek(fraction float64) Snapshot {
	return m.exec(func(c *playback.Controller) { c.Seek(fraction) })
}

// SetVolume sets the output level (0..1) and unmutes.
func (m *Manager) SetVolume(level float64) Snapshot {
	return m.exec(func(c *playback.Controller) { c.SetVolume(level) })
}

// ToggleMute flips mute.
func (m *Manager) ToggleMute() Snapshot {
	return m.exec(func(c *playback.Controller) { c.ToggleMute() })
}

// SetCriteria rebuilds the presented view from criteria.
func (m *Manager) SetCriteria(c filter.Criteria) (Snapshot, error) {
	return m.execErr(func(*playback.Controller) error { return m.applyCriteria(c) })
}

// Search rebuilds the presented view from search-box input.
func (m *Manager) Search(input string) (Snapshot, error) {
	return m.SetCriteria(filter.ParseSearch(input))
}

// OpenLink applies a deep link: the view criteria under the query scheme,
// then the addressed track, if any.
func (m *Manager) OpenLink(raw string) (Snapshot, error) {
	return m.execErr(func(*playback.Controller) error { return m.openLink(raw) })
}

// ShareURL returns the share URL for canonical index i, or for the current
// track when i is negative. With nothing selected it addresses the view.
func (m *Manager) ShareURL(i int) (string, error) {
	var url string
	var err error
	ok := m.call(func() {
		if !m.stateMgr.IsReady() {
			err = ErrNotReady
			return
		}
		url, err = m.shareURL(i)
	})
	if !ok {
		return "", ErrClosed
	}
	return url, err
}

// Share hands the share URL for canonical index i (or the current track) to
// the configured share surfaces. A failure never changes player state.
func (m *Manager) Share(ctx context.Context, i int) (share.Result, error) {
	if m.sharer == nil {
		return share.Result{}, ErrNoSharer
	}

	url, err := m.ShareURL(i)
	if err != nil {
		return share.Result{}, err
	}

	title := ""
	if i < 0 {
		i = m.Snapshot().Status.CurrentIndex
	}
	if t, ok := m.Track(i); ok {
		title = t.Title
	}
	return m.sharer.Share(ctx, title, url)
}

// Subscribe registers a notification stream. The first notification the
// stream receives is the initial state.
func (m *Manager) Subscribe(stream notification.Stream) (string, error) {
	idCh := make(chan string, 1)
	ok := m.call(func() {
		m.enqueue(outboxItem{
			n:      m.newNotification(notification.TypeInitialState, m.status()),
			stream: stream,
			idCh:   idCh,
		})
	})
	if !ok {
		return "", ErrClosed
	}

	select {
	case id := <-idCh:
		return id, nil
	case <-m.ctx.Done():
		return "", ErrClosed
	}
}

// Unsubscribe removes a notification stream.
func (m *Manager) Unsubscribe(id string) {
	m.hub.Leave(id)
}

// SubscriberCount returns the number of notification subscribers.
func (m *Manager) SubscriberCount() int {
	return m.hub.Len()
}

// --- Loop ---

func (m *Manager) loop() {
	defer close(m.done)
	for {
		select {
		case <-m.ctx.Done():
			return
		case fn := <-m.inbox:
			fn()
		}
	}
}

// post queues fn on the loop without waiting.
func (m *Manager) post(fn func()) bool {
	if m.ctx.Err() != nil {
		return false
	}
	select {
	case m.inbox <- fn:
		return true
	case <-m.ctx.Done():
		return false
	}
}

// call runs fn on the loop and waits for it. It must not be called from the
// loop itself.
func (m *Manager) call(fn func()) bool {
	if !m.started.Load() {
		return false
	}
	doneCh := make(chan struct{})
	if !m.post(func() {
		defer close(doneCh)
		fn()
	}) {
		return false
	}
	select {
	case <-doneCh:
		return true
	case <-m.ctx.Done():
		return false
	}
}

// exec runs a transport command. Commands are inert until the catalog is
// ready.
func (m *Manager) exec(fn func(c *playback.Controller)) Snapshot {
	snap, _ := m.execErr(func(c *playback.Controller) error {
		fn(c)
		return nil
	})
	return snap
}

func (m *Manager) execErr(fn func(c *playback.Controller) error) (Snapshot, error) {
	var snap Snapshot
	var err error
	ok := m.call(func() {
		if m.playback == nil || !m.stateMgr.IsReady() {
			zlog.Debug().Msgf("session: ignoring command: phase=%s", m.stateMgr.GetPhase())
			err = ErrNotReady
		} else {
			err = fn(m.playback)
			m.flushEvents()
		}
		snap = m.snapshot()
	})
	if !ok {
		return m.closedSnapshot(), ErrClosed
	}
	return snap, err
}

func (m *Manager) load(ctx context.Context) {
	cat, err := m.loader.Load(ctx)
	m.post(func() { m.onLoaded(cat, err) })
}

func (m *Manager) onLoaded(cat *catalog.Catalog, err error) {
	defer m.readyOnce.Do(func() { close(m.ready) })

	if err != nil {
		zlog.Error().Err(err).Msg("session: catalog load failed")
		m.stateMgr.Fail(err)
		m.enqueue(outboxItem{n: m.newNotification(notification.TypePhaseChanged, nil)})
		return
	}

	m.catalog.Store(cat)
	m.media = m.newMedia(m.mediaSink)
	m.playback = playback.NewController(cat, m.media, playback.Config{
		Policy:        m.policy,
		InitialVolume: m.config.Playback.InitialVolume,
		FailureText:   m.config.GetMessage("playback_error"),
	})
	m.stateMgr.SetPhase(state.PhaseReady)
	zlog.Info().Msgf("session: ready: songs=%d", cat.Len())

	if m.initialLink != "" {
		if err := m.openLink(m.initialLink); err != nil {
			zlog.Warn().Err(err).Msgf("session: ignoring initial link: %s", m.initialLink)
		}
	}
	m.refreshLink()
	m.enqueue(outboxItem{n: m.newNotification(notification.TypePhaseChanged, m.status())})
	m.flushEvents()
}

// mediaSink receives media notifications from media goroutines.
func (m *Manager) mediaSink(ev playback.MediaEvent) {
	m.post(func() {
		if m.playback == nil {
			return
		}
		m.playback.HandleMedia(ev)
		m.flushEvents()
	})
}

func (m *Manager) applyCriteria(c filter.Criteria) error {
	c = m.effectiveCriteria(c)
	chain, err := filter.Build(c, m.settings)
	if err != nil {
		return err
	}
	m.stateMgr.SetCriteria(c)
	m.playback.SetView(chain.Execute(m.playback.Catalog()))
	zlog.Debug().Msgf("session: view rebuilt: criteria=%q size=%d", c.String(), m.playback.View().Len())
	return nil
}

// effectiveCriteria drops the parts of c whose filters are disabled.
func (m *Manager) effectiveCriteria(c filter.Criteria) filter.Criteria {
	if !m.config.IsFilterEnabled("genre") {
		c.Genre = ""
	}
	if !m.config.IsFilterEnabled("tag") {
		c.Tag = ""
	}
	if !m.config.IsFilterEnabled("playlist") {
		c.Playlist = ""
	}
	if !m.config.IsFilterEnabled("title_search") {
		c.Query = ""
	}
	return c
}

func (m *Manager) openLink(raw string) error {
	link, err := deeplink.Parse(raw, m.scheme)
	if err != nil {
		return err
	}

	if m.scheme == deeplink.SchemeQuery {
		if err := m.applyCriteria(link.Criteria); err != nil {
			return err
		}
	}

	if !link.HasTrack() {
		return nil
	}
	idx := link.Resolve(m.playback.Catalog())
	if idx < 0 {
		zlog.Warn().Msgf("session: link addresses no track: link=%s", raw)
		return nil
	}
	if idx == m.playback.Current() {
		// Re-applying the session's own link must not restart the track.
		return nil
	}
	m.playback.Select(idx)
	return nil
}

func (m *Manager) shareURL(i int) (string, error) {
	criteria := m.stateMgr.GetCriteria()
	if i < 0 {
		i = m.playback.Current()
	}
	if i < 0 {
		return m.links.View(criteria), nil
	}
	return m.links.Track(m.playback.Catalog(), i, criteria)
}

// refreshLink replaces the session link with the one for the current state.
func (m *Manager) refreshLink() {
	if m.playback == nil {
		return
	}
	url, err := m.shareURL(-1)
	if err != nil {
		zlog.Warn().Err(err).Msg("session: failed to build link")
		return
	}
	m.stateMgr.SetLink(url)
}

// flushEvents turns pending controller events into notifications.
func (m *Manager) flushEvents() {
	for {
		select {
		case ev := <-m.playback.Events():
			if ev.Type == playback.EventTrackChanged || ev.Type == playback.EventViewChanged {
				m.refreshLink()
			}
			status := ev.Status
			m.enqueue(outboxItem{n: m.newNotification(notification.TypeOf(ev.Type), &status)})
		default:
			return
		}
	}
}

func (m *Manager) enqueue(item outboxItem) {
	select {
	case m.outbox <- item:
	case <-m.ctx.Done():
	}
}

func (m *Manager) broadcastLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case item := <-m.outbox:
			if item.stream != nil {
				id := m.hub.Join(item.stream)
				if err := m.hub.Deliver(id, item.n); err != nil {
					zlog.Warn().Err(err).Msgf("session: failed to send initial state: subscription=%s", id)
				}
				item.idCh <- id
				continue
			}
			m.hub.Publish(item.n)
		}
	}
}
