package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"

	"stockpilot/internal/service"
)

const (
	sessionCookie = "stockpilot_session"
	sessionIDKey  = "sid"
	ctxSessionKey = "session"
)

// NewCookieStore signs the cookie that carries the session id.
func NewCookieStore(key []byte, secure bool) *gsessions.CookieStore {
	store := gsessions.NewCookieStore(key)
	store.Options = &gsessions.Options{
		Path:     "/",
		MaxAge:   int(service.SessionIdleTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// withSession binds the request to its in-memory session, creating one on first contact.
func (s *Server) withSession(c *gin.Context) {
	cs, err := s.cookies.Get(c.Request, sessionCookie)
	if err != nil {
		// tampered or stale cookie: start over
		slog.Debug("session cookie rejected", "err", err)
	}
	id, _ := cs.Values[sessionIDKey].(string)

	sess, created, err := s.sessions.GetOrCreate(c, id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if created {
		cs.Values[sessionIDKey] = sess.ID
		if err := cs.Save(c.Request, c.Writer); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "cannot save session"})
			return
		}
	}
	c.Set(ctxSessionKey, sess)
	c.Next()
}

func session(c *gin.Context) *service.Session {
	return c.MustGet(ctxSessionKey).(*service.Session)
}
