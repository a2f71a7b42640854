package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/analysis"
	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/logging"
)

// SessionCookie names the cookie holding the browser session ID
const SessionCookie = "vibetagger_session"

// session is one browser's application state
type session struct {
	id         string
	controller *app.Controller
	created    time.Time
}

// sessionStore keeps sessions in memory for the lifetime of the process
type sessionStore struct {
	analyzer analysis.Analyzer

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore(analyzer analysis.Analyzer) *sessionStore {
	return &sessionStore{
		analyzer: analyzer,
		sessions: make(map[string]*session),
	}
}

// lookup returns the session named by the request cookie, if any
func (st *sessionStore) lookup(r *http.Request) *session {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id.String()]
}

// ensure returns the request's session, creating it (and setting the
// cookie) when the browser has none or an unknown one.
func (st *sessionStore) ensure(w http.ResponseWriter, r *http.Request) *session {
	if sess := st.lookup(r); sess != nil {
		return sess
	}

	sess := &session{
		id:         uuid.NewString(),
		controller: app.NewController(st.analyzer),
		created:    time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.id] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logging.Debug("Session created", zap.String("session", sess.id), zap.String("remote_addr", r.RemoteAddr))
	return sess
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sessionID returns the session ID carried by the request, for logging
func sessionID(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
