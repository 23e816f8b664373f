package mockserver

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Turn is one stored message of a conversation.
type Turn struct {
	Role    string
	Content string
}

type session struct {
	turns     []Turn
	userTurns int
	lastUsed  uint64
}

// SessionStore keeps conversation history in memory. When full, creating a
// session evicts the least recently used one.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	maxMessages int
	maxSessions int
	clock       uint64
}

// NewSessionStore creates a store that keeps at most maxMessages turns per
// session and at most maxSessions sessions. Zero means no limit.
func NewSessionStore(maxMessages, maxSessions int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*session),
		maxMessages: maxMessages,
		maxSessions: maxSessions,
	}
}

// Resolve returns id when it names a known session. Otherwise a new session
// is created and created is true.
func (s *SessionStore) Resolve(id string) (sid string, created bool) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.lastUsed = s.tickLocked()
			return id, false
		}
	}
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictLocked()
	}
	sid = uuid.NewString()
	s.sessions[sid] = &session{lastUsed: s.tickLocked()}
	return sid, true
}

// Append records a turn. Unknown sessions are ignored.
func (s *SessionStore) Append(sessionID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	sess.turns = append(sess.turns, turn)
	if turn.Role == "user" {
		sess.userTurns++
	}
	if s.maxMessages > 0 && len(sess.turns) > s.maxMessages {
		sess.turns = sess.turns[len(sess.turns)-s.maxMessages:]
	}
	sess.lastUsed = s.tickLocked()
}

// History returns a copy of the session's retained turns.
func (s *SessionStore) History(sessionID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return []Turn{}
	}
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// UserTurns returns how many user messages the session has received,
// including ones no longer retained in its history.
func (s *SessionStore) UserTurns(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.userTurns
	}
	return 0
}

// Len returns the number of sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) tickLocked() uint64 {
	s.clock++
	return s.clock
}

func (s *SessionStore) evictLocked() {
	var oldestID string
	var oldest uint64
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastUsed < oldest {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.sessions, oldestID)
}
