// Package update schedules periodic update checks and reports their
// outcomes. A single control goroutine owns the timer and the scheduling
// state; each check runs on its own goroutine and reports back over a
// channel, so nothing here ever blocks the caller.
package update

import (
	"context"
	"time"

	"github.com/snipkit/snipd/internal/constants"
	"github.com/snipkit/snipd/internal/logging"
)

// Preferences is the slice of the preferences store the manager needs.
// *prefs.Manager satisfies it.
type Preferences interface {
	AutoCheckForUpdates(ctx context.Context) (bool, error)
	LastUpdateCheck(ctx context.Context) (time.Time, error)
	SetLastUpdateCheck(ctx context.Context, at time.Time) error
}

// Config assembles a Manager's collaborators. Zero durations fall back to
// the application defaults.
type Config struct {
	Checker      Checker
	Prefs        Preferences
	Now          func() time.Time
	ShortDelay   time.Duration
	FullInterval time.Duration
	CheckTimeout time.Duration
}

type state int

const (
	stateDisabled state = iota
	stateScheduled
	stateChecking
)

// checkResult is the single message a check goroutine sends back.
type checkResult struct {
	info *VersionInfo
	err  error
}

const eventBufferSize = 32

// Manager runs the update-check schedule. Construct with New, wire the
// auto-check preference toggle to SetAutoCheckEnabled, then drive it with
// Run. The manager lives for the process lifetime; cancel the Run context
// to stop it.
type Manager struct {
	cfg     Config
	timer   *time.Timer
	state   state
	events  chan Event
	trigger chan struct{}
	toggles chan bool
	results chan checkResult
}

// New creates a Manager. The timer starts disarmed; Run evaluates the
// auto-check preference to decide the initial state.
func New(cfg Config) *Manager {
	if cfg.ShortDelay <= 0 {
		cfg.ShortDelay = constants.LaunchCheckDelay
	}
	if cfg.FullInterval <= 0 {
		cfg.FullInterval = constants.UpdateCheckInterval
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = constants.UpdateCheckTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	return &Manager{
		cfg:     cfg,
		timer:   timer,
		state:   stateDisabled,
		events:  make(chan Event, eventBufferSize),
		trigger: make(chan struct{}, 1),
		toggles: make(chan bool, 16),
		results: make(chan checkResult),
	}
}

// Events returns the notification channel. It is closed when Run returns.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// CheckNow requests an immediate check. The request is ignored when a check
// is already in flight, and coalesced when one is already queued.
func (m *Manager) CheckNow() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// SetAutoCheckEnabled feeds an auto-check preference change to the control
// loop. Wire it to prefs.SubscribeAutoCheck.
func (m *Manager) SetAutoCheckEnabled(enabled bool) {
	m.toggles <- enabled
}

// Run drives the control loop until ctx is cancelled. An in-flight check is
// allowed to finish before Run returns.
func (m *Manager) Run(ctx context.Context) error {
	enabled, err := m.cfg.Prefs.AutoCheckForUpdates(ctx)
	if err != nil {
		logging.Get(ctx).Error().Err(err).Msg("failed to read auto-check preference, assuming enabled")
		enabled = true
	}
	m.applyAutoCheck(ctx, enabled)

	for {
		select {
		case <-ctx.Done():
			m.shutdown(ctx)
			return nil

		case <-m.timer.C:
			if m.state == stateChecking {
				// A toggle re-armed the timer under an in-flight check;
				// completion will schedule the next one.
				continue
			}
			m.startCheck(ctx)

		case <-m.trigger:
			if m.state == stateChecking {
				logging.Get(ctx).Debug().Msg("manual update check ignored, check already in progress")
				continue
			}
			m.disarm()
			m.startCheck(ctx)

		case enabled := <-m.toggles:
			m.applyAutoCheck(ctx, enabled)

		case res := <-m.results:
			m.handleResult(ctx, res)
		}
	}
}

// applyAutoCheck disarms the timer unconditionally, then re-arms it per the
// scheduling policy when auto-check is enabled. An in-flight check is left
// to finish either way.
func (m *Manager) applyAutoCheck(ctx context.Context, enabled bool) {
	m.disarm()
	if m.state != stateChecking {
		m.state = stateDisabled
	}
	if !enabled {
		logging.Get(ctx).Debug().Msg("automatic update checks disabled")
		return
	}

	delay := m.nextCheckDelay(ctx)
	m.arm(delay)
	logging.Get(ctx).Debug().Dur("delay", delay).Msg("automatic update check scheduled")
}

// nextCheckDelay computes the delay to the next check: the short delay when
// no check was ever recorded, otherwise the time remaining until one full
// interval after the last check, never less than the short delay.
func (m *Manager) nextCheckDelay(ctx context.Context) time.Duration {
	last, err := m.cfg.Prefs.LastUpdateCheck(ctx)
	if err != nil {
		logging.Get(ctx).Error().Err(err).Msg("failed to read last update check time")
		return m.cfg.ShortDelay
	}
	return nextDelay(last, m.cfg.Now(), m.cfg.ShortDelay, m.cfg.FullInterval)
}

// nextDelay is the pure scheduling policy.
func nextDelay(last, now time.Time, short, full time.Duration) time.Duration {
	if last.IsZero() {
		return short
	}
	remaining := last.Add(full).Sub(now)
	if remaining < short {
		return short
	}
	return remaining
}

func (m *Manager) arm(delay time.Duration) {
	m.timer.Reset(delay)
	if m.state != stateChecking {
		m.state = stateScheduled
	}
}

// disarm stops the timer and drains a pending expiry so a stale tick can
// never start a check.
func (m *Manager) disarm() {
	if !m.timer.Stop() {
		select {
		case <-m.timer.C:
		default:
		}
	}
}

// startCheck spawns the check goroutine. The goroutine sends exactly one
// result message and exits.
func (m *Manager) startCheck(ctx context.Context) {
	m.state = stateChecking
	m.emit(ctx, Event{Kind: EventCheckStarted})

	checkCtx, cancel := context.WithTimeout(ctx, m.cfg.CheckTimeout)
	go func() {
		defer cancel()
		info, err := m.cfg.Checker.Check(checkCtx)
		m.results <- checkResult{info: info, err: err}
	}()
}

// handleResult processes the single outcome of a check: emit the outcome
// event then the finished event, persist the completion time, and re-arm
// for the full interval when auto-check is still enabled.
func (m *Manager) handleResult(ctx context.Context, res checkResult) {
	log := logging.Get(ctx)

	if m.state != stateChecking {
		// A result with no check in flight means the bookkeeping is off.
		// Recover with a safe re-arm instead of tearing the process down.
		log.Error().Msg("received update check result with no check in progress")
		m.rearmAfterCheck(ctx)
		return
	}
	m.state = stateScheduled

	switch {
	case res.err != nil:
		log.Warn().Err(res.err).Msg("update check failed")
		m.emit(ctx, Event{Kind: EventCheckFailed, Message: res.err.Error()})
	case res.info != nil:
		log.Info().Str("version", res.info.String()).Msg("update available for download")
		m.emit(ctx, Event{Kind: EventUpdateAvailable, Version: res.info})
	default:
		log.Debug().Msg("no update available")
		m.emit(ctx, Event{Kind: EventNoUpdateAvailable})
	}
	m.emit(ctx, Event{Kind: EventCheckFinished})

	if err := m.cfg.Prefs.SetLastUpdateCheck(ctx, m.cfg.Now()); err != nil {
		log.Error().Err(err).Msg("failed to record update check time")
	}

	m.rearmAfterCheck(ctx)
}

// rearmAfterCheck re-arms the timer for the full interval, gated on the
// current auto-check preference value.
func (m *Manager) rearmAfterCheck(ctx context.Context) {
	enabled, err := m.cfg.Prefs.AutoCheckForUpdates(ctx)
	if err != nil {
		logging.Get(ctx).Error().Err(err).Msg("failed to read auto-check preference")
		return
	}
	if !enabled {
		m.state = stateDisabled
		return
	}
	m.arm(m.cfg.FullInterval)
}

// shutdown waits out an in-flight check, then releases the events channel.
func (m *Manager) shutdown(ctx context.Context) {
	m.disarm()
	if m.state == stateChecking {
		res := <-m.results
		// The run context is already cancelled; bookkeeping still needs a
		// live one.
		m.handleResult(context.WithoutCancel(ctx), res)
	}
	close(m.events)
}

// emit delivers an event without ever blocking the control loop. A full
// buffer means the consumer stopped draining; the event is dropped and
// logged.
func (m *Manager) emit(ctx context.Context, ev Event) {
	select {
	case m.events <- ev:
	default:
		logging.Get(ctx).Warn().Stringer("event", ev.Kind).Msg("event buffer full, notification dropped")
	}
}
