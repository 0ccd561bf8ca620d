package persist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/storage"
	"github.com/sandeepkv93/daybook/internal/store"
)

var ErrWriterStopped = errors.New("persist: writer stopped")

const defaultWriteTimeout = 5 * time.Second

type WriterOptions struct {
	Debounce time.Duration
	Timeout  time.Duration
	Logger   *log.Logger
}

// Writer saves the latest submitted snapshot in the background. Submissions
// made while a write is pending replace it; Stop writes whatever is still
// pending before returning.
type Writer struct {
	mu       sync.Mutex
	kv       storage.KV
	logger   *log.Logger
	debounce time.Duration
	timeout  time.Duration

	state model.State
	prefs model.Preferences
	dirty bool

	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool

	written   uint64
	failed    uint64
	coalesced uint64
}

func NewWriter(kv storage.KV, state model.State, prefs model.Preferences, opts WriterOptions) *Writer {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultWriteTimeout
	}
	return &Writer{
		kv:       kv,
		logger:   opts.Logger,
		debounce: opts.Debounce,
		timeout:  opts.Timeout,
		state:    state,
		prefs:    prefs,
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.loop()
}

// Stop ends the background loop and flushes any pending snapshot.
func (w *Writer) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	close(w.stopCh)
	w.mu.Unlock()
	if started {
		<-w.doneCh
		return
	}
	w.flush()
}

func (w *Writer) Submit(state model.State) error {
	return w.update(func() { w.state = state })
}

func (w *Writer) SubmitPreferences(prefs model.Preferences) error {
	return w.update(func() { w.prefs = prefs })
}

// Observe is a store.Listener that submits every committed state.
func (w *Writer) Observe(c store.Commit) {
	if err := w.Submit(c.State); err != nil {
		w.logger.Warn("commit not persisted", "version", c.Version, "err", err)
	}
}

func (w *Writer) update(apply func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWriterStopped
	}
	if w.dirty {
		atomic.AddUint64(&w.coalesced, 1)
	}
	apply()
	w.dirty = true
	w.signalWakeup()
	return nil
}

func (w *Writer) Written() uint64   { return atomic.LoadUint64(&w.written) }
func (w *Writer) Failed() uint64    { return atomic.LoadUint64(&w.failed) }
func (w *Writer) Coalesced() uint64 { return atomic.LoadUint64(&w.coalesced) }

func (w *Writer) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	for {
		select {
		case <-w.wakeup:
		case <-w.stopCh:
			w.flush()
			return
		}

		timer = resetTimer(timer, w.debounce)
		select {
		case <-timer.C:
			w.flush()
		case <-w.stopCh:
			stopTimer(timer)
			w.flush()
			return
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	state, prefs := w.state, w.prefs
	w.dirty = false
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := Save(ctx, w.kv, state, prefs); err != nil {
		atomic.AddUint64(&w.failed, 1)
		w.logger.Error("persist snapshot failed", "err", err)
		return
	}
	atomic.AddUint64(&w.written, 1)
}

func (w *Writer) signalWakeup() {
	select {
	case w.wakeup <- struct{}{}:
	default:
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
