package dialog

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrTooManySessions = errors.New("too many active conversations")
	ErrStoreClosed     = errors.New("session store is shut down")
)

// TurnHandler runs one turn against a session.
type TurnHandler interface {
	Handle(ctx context.Context, s *Session, utterance string) string
}

// SessionMirror publishes session activity outside the process. Failures
// are logged and otherwise ignored.
type SessionMirror interface {
	Touch(ctx context.Context, info SessionInfo, ttl time.Duration) error
	Remove(ctx context.Context, conversationID string) error
}

// Turn is the outcome of one processed utterance.
type Turn struct {
	ConversationID string
	Reply          string
	State          State
	Ended          bool
}

type SessionStoreConfig struct {
	Timeout     time.Duration
	MaxSessions int
}

type entry struct {
	mu         sync.Mutex
	session    *Session
	timer      *time.Timer
	generation uint64
	removed    bool
}

type expiry struct {
	conversationID string
	generation     uint64
}

// SessionStore owns every live conversation. Turns for one conversation are
// serialized; different conversations run concurrently. Each session has an
// inactivity timer, re-armed on every turn, whose expiry is delivered to a
// single loop that discards the session.
type SessionStore struct {
	handler     TurnHandler
	mirror      SessionMirror
	logger      *zap.Logger
	timeout     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	entries  map[string]*entry
	watchers map[string]map[uint64]func(string)
	watchSeq uint64
	closed   bool

	expired   chan expiry
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewSessionStore starts the expiry loop. mirror may be nil. Call Shutdown
// to stop it.
func NewSessionStore(handler TurnHandler, mirror SessionMirror, cfg SessionStoreConfig, logger *zap.Logger) *SessionStore {
	st := &SessionStore{
		handler:     handler,
		mirror:      mirror,
		logger:      logger,
		timeout:     cfg.Timeout,
		maxSessions: cfg.MaxSessions,
		now:         time.Now,
		entries:     make(map[string]*entry),
		watchers:    make(map[string]map[uint64]func(string)),
		expired:     make(chan expiry, 64),
		done:        make(chan struct{}),
	}
	st.wg.Add(1)
	go st.run()
	return st
}

// Process runs one utterance for a conversation, creating the session on
// first contact.
func (st *SessionStore) Process(ctx context.Context, conversationID, utterance string) (Turn, error) {
	for {
		e, err := st.acquire(conversationID)
		if err != nil {
			return Turn{}, err
		}

		e.mu.Lock()
		if e.removed {
			// expired between lookup and lock; start over with a new session
			e.mu.Unlock()
			continue
		}
		turn := st.processLocked(ctx, e, utterance)
		e.mu.Unlock()
		return turn, nil
	}
}

func (st *SessionStore) acquire(conversationID string) (*entry, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return nil, ErrStoreClosed
	}
	if e, ok := st.entries[conversationID]; ok {
		return e, nil
	}
	if st.maxSessions > 0 && len(st.entries) >= st.maxSessions {
		return nil, ErrTooManySessions
	}

	e := &entry{session: NewSession(conversationID, st.now())}
	st.entries[conversationID] = e
	st.logger.Debug("session created", zap.String("conversationId", conversationID))
	return e, nil
}

func (st *SessionStore) processLocked(ctx context.Context, e *entry, utterance string) Turn {
	if e.timer != nil {
		e.timer.Stop()
	}
	// invalidates any expiry already in flight for the previous timer
	e.generation++

	s := e.session
	reply := st.handler.Handle(ctx, s, utterance)
	turn := Turn{
		ConversationID: s.ConversationID,
		Reply:          reply,
		State:          s.State,
	}

	if s.State == StateEnd {
		turn.Ended = true
		st.removeLocked(e, "ended")
		return turn
	}

	gen := e.generation
	id := s.ConversationID
	e.timer = time.AfterFunc(st.timeout, func() {
		select {
		case st.expired <- expiry{conversationID: id, generation: gen}:
		case <-st.done:
		}
	})

	if st.mirror != nil {
		if err := st.mirror.Touch(ctx, s.Info(), st.timeout); err != nil {
			st.logger.Warn("failed to mirror session", zap.String("conversationId", id), zap.Error(err))
		}
	}

	return turn
}

// removeLocked drops the entry. The caller holds e.mu.
func (st *SessionStore) removeLocked(e *entry, reason string) {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.removed = true
	id := e.session.ConversationID

	st.mu.Lock()
	if st.entries[id] == e {
		delete(st.entries, id)
	}
	st.mu.Unlock()

	st.logger.Info("session removed", zap.String("conversationId", id), zap.String("reason", reason))

	if st.mirror != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := st.mirror.Remove(ctx, id); err != nil {
			st.logger.Warn("failed to remove mirrored session", zap.String("conversationId", id), zap.Error(err))
		}
	}
}

func (st *SessionStore) run() {
	defer st.wg.Done()
	for {
		select {
		case ev := <-st.expired:
			st.expire(ev)
		case <-st.done:
			return
		}
	}
}

func (st *SessionStore) expire(ev expiry) {
	st.mu.Lock()
	e, ok := st.entries[ev.conversationID]
	st.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	if e.removed || e.generation != ev.generation {
		e.mu.Unlock()
		return
	}
	st.removeLocked(e, "inactive")
	e.mu.Unlock()

	st.notify(ev.conversationID, ReplyTimeout)
}

// Watch registers fn to receive the farewell when the conversation expires
// from inactivity. The returned func unregisters it.
func (st *SessionStore) Watch(conversationID string, fn func(farewell string)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.watchSeq++
	seq := st.watchSeq
	if st.watchers[conversationID] == nil {
		st.watchers[conversationID] = make(map[uint64]func(string))
	}
	st.watchers[conversationID][seq] = fn

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.watchers[conversationID], seq)
		if len(st.watchers[conversationID]) == 0 {
			delete(st.watchers, conversationID)
		}
	}
}

func (st *SessionStore) notify(conversationID, message string) {
	st.mu.Lock()
	fns := make([]func(string), 0, len(st.watchers[conversationID]))
	for _, fn := range st.watchers[conversationID] {
		fns = append(fns, fn)
	}
	st.mu.Unlock()

	for _, fn := range fns {
		fn(message)
	}
}

// Active returns the number of live sessions.
func (st *SessionStore) Active() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// Shutdown cancels every inactivity timer, drops all sessions and stops the
// expiry loop. Later calls to Process fail with ErrStoreClosed.
func (st *SessionStore) Shutdown() {
	st.closeOnce.Do(func() {
		st.mu.Lock()
		st.closed = true
		entries := st.entries
		st.entries = make(map[string]*entry)
		st.mu.Unlock()

		for _, e := range entries {
			e.mu.Lock()
			if e.timer != nil {
				e.timer.Stop()
			}
			e.removed = true
			e.mu.Unlock()
		}

		close(st.done)
		st.wg.Wait()
		st.logger.Info("session store shut down", zap.Int("sessions", len(entries)))
	})
}
