// Package store hosts the engine: it serializes dispatch, commits states and
// notifies listeners with each committed state.
package store

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
)

const defaultCacheSize = 128

// Commit describes one accepted transition.
type Commit struct {
	State   model.State
	Version uint64
	Action  engine.Action
}

type Listener func(Commit)

type Options struct {
	Engine    *engine.Engine
	Logger    *log.Logger
	CacheSize int
}

type Store struct {
	mu        sync.Mutex
	engine    *engine.Engine
	logger    *log.Logger
	state     model.State
	version   uint64
	listeners map[int]Listener
	nextID    int
	memo      *lru.Cache[memoKey, any]

	// notifyMu orders delivery; delivered is the last version handed out.
	notifyMu  sync.Mutex
	delivered uint64
}

type memoKey struct {
	version uint64
	view    string
}

func New(initial model.State, opts Options) (*Store, error) {
	if opts.Engine == nil {
		opts.Engine = engine.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	memo, err := lru.New[memoKey, any](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("store: create view cache: %w", err)
	}
	return &Store{
		engine:    opts.Engine,
		logger:    opts.Logger,
		state:     initial,
		listeners: make(map[int]Listener),
		memo:      memo,
	}, nil
}

// State returns the committed state and its version.
func (s *Store) State() (model.State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.version
}

// Subscribe registers fn for every future commit. The returned func removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies a to the committed state. Listeners run after the state
// lock is released, in the dispatching goroutine, and only when the state
// changed. Commits reach listeners in version order; a commit overtaken by a
// newer one is not delivered. Listeners must not call Dispatch.
func (s *Store) Dispatch(a engine.Action) (engine.Result, error) {
	s.mu.Lock()
	res, err := s.engine.Apply(s.state, a)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("action rejected", "action", actionName(a), "err", err)
		return res, err
	}
	if !res.Changed {
		s.mu.Unlock()
		return res, nil
	}
	s.state = res.State
	s.version++
	commit := Commit{State: s.state, Version: s.version, Action: a}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("action committed", "action", actionName(a), "version", commit.Version)
	s.notify(commit, listeners)
	return res, nil
}

func (s *Store) notify(commit Commit, listeners []Listener) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if commit.Version <= s.delivered {
		s.logger.Debug("stale commit skipped", "version", commit.Version, "delivered", s.delivered)
		return
	}
	s.delivered = commit.Version
	for _, fn := range listeners {
		fn(commit)
	}
}

func actionName(a engine.Action) string {
	return fmt.Sprintf("%T", a)
}
