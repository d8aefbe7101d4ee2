package session

import (
	"sync"

	"github.com/gammazero/deque"
	"go.uber.org/atomic"

	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/voice"
)

// Bus delivers events to the registered callbacks on one goroutine, in
// publication order. Publish never blocks.
type Bus struct {
	callbacks atomic.Pointer[voice.Callbacks]

	mu     sync.Mutex
	queue  deque.Deque[voice.Event]
	closed bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup

	logger *log.Logger
}

func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		panic("logger is required")
	}
	b := &Bus{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger,
	}
	b.wg.Add(1)
	go b.loop()
	return b
}

// SetCallbacks replaces the registration. Events still queued are delivered
// to the new set.
func (b *Bus) SetCallbacks(cb voice.Callbacks) {
	b.callbacks.Store(&cb)
}

func (b *Bus) Publish(ev voice.Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue.PushBack(ev)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Close delivers what is already queued and stops the delivery goroutine.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
}

func (b *Bus) loop() {
	defer b.wg.Done()
	for {
		select {
		case <-b.wake:
			b.drain()
		case <-b.done:
			b.drain()
			return
		}
	}
}

func (b *Bus) drain() {
	for {
		b.mu.Lock()
		if b.queue.Len() == 0 {
			b.mu.Unlock()
			return
		}
		ev := b.queue.PopFront()
		b.mu.Unlock()

		b.deliver(ev)
	}
}

func (b *Bus) deliver(ev voice.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event callback panicked",
				log.Stringer("kind", ev.Kind),
				log.Any("panic", r))
		}
	}()
	ev.Dispatch(b.callbacks.Load())
}
