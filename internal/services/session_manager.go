package services

import (
	"sync"
	"time"
)

// sessionTTL bounds how long an idle page session is kept before the
// registry drops it. Abandoned tabs would otherwise accumulate forever.
const sessionTTL = 30 * time.Minute

// SessionManager maps a browser's sid cookie to its page session. A session
// lives for one page load: asking for the same sid with a different email
// starts a fresh session, which re-fetches user, categories and products.
// Sessions idle past sessionTTL are evicted.
type SessionManager struct {
	mu       sync.Mutex
	gws      Gateways
	sessions map[string]*sessionEntry

	now func() time.Time
}

type sessionEntry struct {
	sess     *PageSession
	lastSeen time.Time
}

func NewSessionManager(gws Gateways) *SessionManager {
	return &SessionManager{gws: gws, sessions: map[string]*sessionEntry{}, now: time.Now}
}

// Session returns the live session for sid, starting a new one when there
// is none yet or the email changed. started reports whether a fresh session
// was created; err is the degraded category-load error from Start, for the
// caller to log.
func (m *SessionManager) Session(sid, email string) (sess *PageSession, started bool, err error) {
	now := m.now()
	m.mu.Lock()
	m.sweep(now)
	if e, ok := m.sessions[sid]; ok && e.sess.Email() == email {
		e.lastSeen = now
		m.mu.Unlock()
		return e.sess, false, nil
	}
	sess = NewPageSession(m.gws, email)
	m.sessions[sid] = &sessionEntry{sess: sess, lastSeen: now}
	m.mu.Unlock()

	err = sess.Start()
	return sess, true, err
}

// Current returns the session for sid without starting one.
func (m *SessionManager) Current(sid string) (*PageSession, bool) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sid]
	if !ok {
		return nil, false
	}
	if now.Sub(e.lastSeen) > sessionTTL {
		delete(m.sessions, sid)
		return nil, false
	}
	e.lastSeen = now
	return e.sess, true
}

// sweep drops idle sessions. Caller holds mu.
func (m *SessionManager) sweep(now time.Time) {
	for sid, e := range m.sessions {
		if now.Sub(e.lastSeen) > sessionTTL {
			delete(m.sessions, sid)
		}
	}
}
