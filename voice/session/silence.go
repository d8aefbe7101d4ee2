package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/internal/scheduler"
)

const silenceKey = "silence"

// SilenceMonitor runs the single idle timer. When it fires and unmuted still
// reports false, onSilent runs once for that arming. A zero timeout disables
// the timer.
//
// unmuted is called without any monitor lock held, but Recheck calls it on
// the caller's goroutine, so callers must not hold locks unmuted needs.
type SilenceMonitor struct {
	sched    *scheduler.KeyedScheduler
	unmuted  func() bool
	onSilent func()
	logger   *log.Logger

	mu      sync.Mutex
	timeout time.Duration
	due     time.Time
	active  bool

	wg sync.WaitGroup
}

func NewSilenceMonitor(
	clock clockwork.Clock,
	timeout time.Duration,
	unmuted func() bool,
	onSilent func(),
	logger *log.Logger,
) *SilenceMonitor {
	if logger == nil {
		panic("logger is required")
	}
	if timeout < 0 {
		timeout = 0
	}
	m := &SilenceMonitor{
		sched:    scheduler.NewKeyedSchedulerWithClock(logger, clock),
		unmuted:  unmuted,
		onSilent: onSilent,
		timeout:  timeout,
		logger:   logger,
	}
	m.wg.Add(1)
	go m.loop()
	return m
}

// Touch restarts the timer: someone spoke or a microphone was enabled.
func (m *SilenceMonitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
	m.armLocked()
}

// Recheck restarts the timer if nobody is unmuted any more.
func (m *SilenceMonitor) Recheck() {
	if m.unmuted() {
		return
	}
	m.Touch()
}

// Stop disarms the timer until the next Touch.
func (m *SilenceMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.due = time.Time{}
	m.sched.Cancel(silenceKey)
}

// SetTimeout changes the duration. A running timer restarts with it.
func (m *SilenceMonitor) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
	if m.active {
		m.armLocked()
	}
}

func (m *SilenceMonitor) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// Armed reports whether the timer is currently counting down.
func (m *SilenceMonitor) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.due.IsZero()
}

func (m *SilenceMonitor) Close() {
	m.sched.Shutdown()
	m.wg.Wait()
}

func (m *SilenceMonitor) armLocked() {
	if m.timeout == 0 {
		m.due = time.Time{}
		m.sched.Cancel(silenceKey)
		return
	}
	m.due = m.sched.Reset(silenceKey, m.timeout)
}

func (m *SilenceMonitor) loop() {
	defer m.wg.Done()
	for f := range m.sched.Chan() {
		m.mu.Lock()
		// superseded by a later Touch, Stop or SetTimeout
		if m.due.IsZero() || !f.Due.Equal(m.due) {
			m.mu.Unlock()
			continue
		}
		m.due = time.Time{}
		m.mu.Unlock()

		if m.unmuted() {
			m.logger.Debug("silence timer fired with an open microphone")
			continue
		}
		silenceFired.Add(context.Background(), 1)
		m.onSilent()
	}
}
