package session

import "sync"

// Store is a concurrency-safe keyed store of sessions. Sessions live for
// process lifetime; there is no eviction.
//
// Updates for one identity are serialized through a per-identity lock so a
// read-modify-write never loses a concurrent write, while updates for
// distinct identities proceed in parallel.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Get returns the session for identity, or nil if none exists.
func (s *Store) Get(identity int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[identity]
}

// GetOrCreate returns the session for identity, creating an empty one if
// needed.
func (s *Store) GetOrCreate(identity int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[identity]; ok {
		return sess
	}
	sess := &Session{Identity: identity, Stage: StageEmpty}
	s.sessions[identity] = sess
	return sess
}

// Put stores the session for identity, replacing any existing one.
func (s *Store) Put(identity int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[identity] = sess
}

// Delete removes the session for identity.
func (s *Store) Delete(identity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Update runs fn against the identity's session under that identity's
// lock. The session is created if absent. fn may block on external calls;
// only events for the same identity wait behind it.
func (s *Store) Update(identity int64, fn func(sess *Session) error) error {
	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	return fn(s.GetOrCreate(identity))
}

// identityLock returns the per-identity mutex, creating it on first use.
func (s *Store) identityLock(identity int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[identity]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[identity] = l
	return l
}
