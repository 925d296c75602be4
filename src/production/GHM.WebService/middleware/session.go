package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authform "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.AuthForm"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

const sessionContextKey = "session"

// CookieStorage keeps the session in browser cookies. Values written during
// the request are visible to later reads in the same request.
type CookieStorage struct {
	c       *gin.Context
	cfg     config.SessionConfig
	now     func() time.Time
	pending map[string]*string
}

// NewCookieStorage binds a storage to the current request
func NewCookieStorage(c *gin.Context, cfg config.SessionConfig) *CookieStorage {
	c.SetSameSite(http.SameSiteLaxMode)
	return &CookieStorage{c: c, cfg: cfg, now: time.Now, pending: make(map[string]*string)}
}

// Get reads a cookie
func (s *CookieStorage) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	v, err := s.c.Cookie(key)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set writes a cookie that lives for the configured session lifetime
func (s *CookieStorage) Set(key, value string) error {
	return s.SetWithExpiry(key, value, s.now().Add(s.cfg.MaxAge))
}

// SetWithExpiry writes a cookie that expires at expiresAt
func (s *CookieStorage) SetWithExpiry(key, value string, expiresAt time.Time) error {
	maxAge := int(expiresAt.Sub(s.now()).Seconds())
	if maxAge <= 0 {
		return errors.New("session already expired")
	}
	s.c.SetCookie(key, value, maxAge, "/", s.cfg.Domain, s.cfg.Secure, true)
	s.pending[key] = &value
	return nil
}

// Delete expires a cookie
func (s *CookieStorage) Delete(key string) error {
	s.c.SetCookie(key, "", -1, "/", s.cfg.Domain, s.cfg.Secure, true)
	s.pending[key] = nil
	return nil
}

// LoadSession restores the session from cookies and puts it on the context
func LoadSession(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := authform.LoadSession(NewCookieStorage(c, cfg)); err == nil {
			SetSession(c, session)
		}
		c.Next()
	}
}

// SetSession makes a session visible to the rest of the request
func SetSession(c *gin.Context, session *ghmmodels.Session) {
	c.Set(sessionContextKey, session)
}

// GetSession returns the session restored by LoadSession
func GetSession(c *gin.Context) (*ghmmodels.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*ghmmodels.Session)
	return s, ok && s != nil
}

// RequireSession sends anonymous page requests to the login screen
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSessionJSON answers 401 for anonymous API requests
func RequireSessionJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// DisplayName picks something human out of the stored user object
func DisplayName(session *ghmmodels.Session) string {
	if session == nil || len(session.User) == 0 {
		return ""
	}
	var user struct {
		FirstName string `json:"firstName"`
		Username  string `json:"username"`
	}
	if err := json.Unmarshal(session.User, &user); err != nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}
