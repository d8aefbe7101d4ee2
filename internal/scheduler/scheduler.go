//nolint:forcetypeassert
package scheduler

import (
	"container/heap"
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/voicelink/internal/log"
)

// Fired is delivered on Chan when a key comes due. Due is the deadline the
// key was scheduled for, so a consumer that re-armed the key in the meantime
// can tell a superseded firing from the current one.
type Fired struct {
	Key string
	Due time.Time
}

// KeyedScheduler manages delayed firing of items identified by unique string
// keys. All mutations run on a single loop goroutine; a min-heap picks the
// next item to fire.
//
// Enqueue keeps the earliest deadline for a key, Reset replaces it:
//
//	ks := NewKeyedScheduler(logger)
//	defer ks.Shutdown()
//
//	ks.Enqueue("retry", 10*time.Second)
//	ks.Enqueue("retry", 5*time.Second)  // earlier, replaces
//	ks.Enqueue("retry", 15*time.Second) // ignored
//	ks.Reset("silence", 30*time.Second) // always replaces
//
//	for f := range ks.Chan() {
//		fmt.Printf("fired: %s\n", f.Key)
//	}
type KeyedScheduler struct {
	items       map[string]*item
	heap        priorityQueue
	chSig       chan Fired
	chanEnqueue chan func()
	timer       clockwork.Timer
	timerTS     time.Time
	ctx         context.Context
	cancel      context.CancelFunc
	clock       clockwork.Clock
	logger      *log.Logger
}

func NewKeyedScheduler(logger *log.Logger) *KeyedScheduler {
	return NewKeyedSchedulerWithClock(logger, clockwork.NewRealClock())
}

func NewKeyedSchedulerWithClock(logger *log.Logger, clock clockwork.Clock) *KeyedScheduler {
	if logger == nil {
		panic("logger is required")
	}
	if clock == nil {
		panic("clock is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	timer := clock.NewTimer(time.Hour)
	timer.Stop()

	ks := &KeyedScheduler{
		chSig:       make(chan Fired),
		items:       make(map[string]*item),
		heap:        make(priorityQueue, 0),
		chanEnqueue: make(chan func(), 100),
		timer:       timer,
		ctx:         ctx,
		cancel:      cancel,
		clock:       clock,
		logger:      logger,
	}
	heap.Init(&ks.heap)

	go ks.loop()
	return ks
}

func (ks *KeyedScheduler) Chan() <-chan Fired {
	return ks.chSig
}

// Enqueue schedules key after delay unless it is already due earlier.
func (ks *KeyedScheduler) Enqueue(key string, delay time.Duration) time.Time {
	ts := ks.clock.Now().Add(delay)
	ks.submit(func() {
		ks.doEnqueue(&item{key: key, ts: ts}, false)
	})
	return ts
}

// Reset schedules key after delay, replacing any pending deadline.
func (ks *KeyedScheduler) Reset(key string, delay time.Duration) time.Time {
	ts := ks.clock.Now().Add(delay)
	ks.submit(func() {
		ks.doEnqueue(&item{key: key, ts: ts}, true)
	})
	return ts
}

func (ks *KeyedScheduler) doEnqueue(item *item, replace bool) {
	curItem, ok := ks.items[item.key]
	if ok {
		// late events
		if !replace && !item.ts.Before(curItem.ts) {
			return
		}
		heap.Remove(&ks.heap, curItem.index)
	}

	ks.items[item.key] = item
	heap.Push(&ks.heap, item)
	ks.scheduleNextTimer()
}

func (ks *KeyedScheduler) Cancel(key string) {
	ks.submit(func() {
		ks.doCancel(key)
	})
}

func (ks *KeyedScheduler) doCancel(key string) {
	if item, exists := ks.items[key]; exists {
		delete(ks.items, key)
		heap.Remove(&ks.heap, item.index)
		ks.scheduleNextTimer()
	}
}

func (ks *KeyedScheduler) Clear() {
	ks.submit(ks.doClear)
}

func (ks *KeyedScheduler) doClear() {
	ks.items = make(map[string]*item)
	ks.heap = make(priorityQueue, 0)
	heap.Init(&ks.heap)
	ks.clearTimer()
}

// Shutdown stops the loop and closes Chan. Calls made afterwards are dropped.
func (ks *KeyedScheduler) Shutdown() {
	ks.cancel()
}

func (ks *KeyedScheduler) submit(action func()) {
	select {
	case <-ks.ctx.Done():
	case ks.chanEnqueue <- action:
	}
}

func (ks *KeyedScheduler) clearTimer() {
	ks.timer.Stop()
	ks.timerTS = time.Time{}
}

func (ks *KeyedScheduler) scheduleNextTimer() {
	if len(ks.items) == 0 {
		ks.clearTimer()
		return
	}

	top := ks.heap[0]
	// the same due, no need to reschedule
	if ks.timerTS.Equal(top.ts) {
		return
	}

	delay := top.ts.Sub(ks.clock.Now())
	if delay < 0 {
		delay = 0
	}

	ks.timerTS = top.ts
	ks.timer.Stop()
	ks.timer.Reset(delay)
}

func (ks *KeyedScheduler) loop() {
	defer close(ks.chSig)
	defer ks.clearTimer()

	for {
		select {
		case <-ks.ctx.Done():
			return
		case action := <-ks.chanEnqueue:
			action()
		case <-ks.timer.Chan():
			ks.timerTS = time.Time{}
			ks.fireDue()
		}
	}
}

func (ks *KeyedScheduler) popTop() *item {
	top := heap.Pop(&ks.heap).(*item)
	delete(ks.items, top.key)
	return top
}

func (ks *KeyedScheduler) fireDue() {
	now := ks.clock.Now()

	for len(ks.items) > 0 {
		if ks.heap[0].ts.After(now) {
			break
		}

		item := ks.popTop()
		select {
		case <-ks.ctx.Done():
			return
		case ks.chSig <- Fired{Key: item.key, Due: item.ts}:
		}
	}

	ks.scheduleNextTimer()
}

// Pending reports whether key is scheduled. It is answered on the loop
// goroutine, so it observes every call submitted before it.
func (ks *KeyedScheduler) Pending(key string) bool {
	res := make(chan bool, 1)
	ks.submit(func() {
		_, ok := ks.items[key]
		res <- ok
	})
	select {
	case ok := <-res:
		return ok
	case <-ks.ctx.Done():
		return false
	}
}
