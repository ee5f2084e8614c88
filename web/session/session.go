// Package session implements the server-side login sessions for the
// storefront. The client only ever holds an opaque token, delivered via a
// signed http-only cookie; all session state lives in the store.
package session

import (
	"encoding/base32"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ecocart/ecocart/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// CookieName is the session cookie delivered to clients.
const CookieName = "ecocart_session"

const contextUserId = "SESSION_USER_ID"

// Manager issues, rotates and destroys sessions and handles the cookie
// transport. Construct one at process start and share it across handlers.
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// NewManager creates a session manager. secret signs the cookie value,
// maxAge is the fixed session lifetime and secure marks the cookie for
// TLS-only transport.
func NewManager(store Store, secret []byte, maxAge time.Duration, secure bool) *Manager {
	codec := securecookie.New(secret, nil)
	codec.MaxAge(int(maxAge.Seconds()))
	return &Manager{
		store:  store,
		codec:  codec,
		maxAge: maxAge,
		secure: secure,
	}
}

// newToken allocates a fresh opaque session token. GenerateRandomKey
// returns nil when the entropy source fails; that must never become an
// empty token.
func newToken() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", errors.New("session token entropy unavailable")
	}
	return strings.TrimRight(base32.StdEncoding.EncodeToString(key), "="), nil
}

// Create allocates a session for a user and returns its token.
func (m *Manager) Create(userId string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := m.store.Create(token, userId, m.maxAge); err != nil {
		return "", err
	}
	return token, nil
}

// Regenerate invalidates oldToken and issues a new session for the same
// user. It is the mandatory step between credential verification and the
// authenticated state, closing the fixation window. If the new session
// cannot be created no session remains and the caller must fail the whole
// login attempt.
func (m *Manager) Regenerate(oldToken, userId string) (string, error) {
	if oldToken != "" {
		if err := m.store.Destroy(oldToken); err != nil {
			return "", err
		}
	}
	return m.Create(userId)
}

// Destroy invalidates a token. Idempotent.
func (m *Manager) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return m.store.Destroy(token)
}

// Resolve maps a token to the owning user id. Expired and unknown tokens
// resolve to none.
func (m *Manager) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	return m.store.Resolve(token)
}

// Token extracts and verifies the session token from the request cookie.
func (m *Manager) Token(c *gin.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	var token string
	if err := m.codec.Decode(CookieName, cookie, &token); err != nil {
		return ""
	}
	return token
}

// SetCookie writes the signed session cookie for a token.
func (m *Manager) SetCookie(c *gin.Context, token string) error {
	encoded, err := m.codec.Encode(CookieName, token)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, encoded, int(m.maxAge.Seconds()), "/", "", m.secure, true)
	return nil
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

// Login rotates the caller's session to userId and sets the cookie.
// Any failure leaves the client unauthenticated.
func (m *Manager) Login(c *gin.Context, userId string) error {
	token, err := m.Regenerate(m.Token(c), userId)
	if err != nil {
		return err
	}
	if err := m.SetCookie(c, token); err != nil {
		if destroyErr := m.store.Destroy(token); destroyErr != nil {
			logger.Warning("destroy session after cookie failure err:", destroyErr)
		}
		return err
	}
	return nil
}

// Logout destroys the caller's session and clears the cookie. Safe to call
// without an active session.
func (m *Manager) Logout(c *gin.Context) {
	if token := m.Token(c); token != "" {
		if err := m.Destroy(token); err != nil {
			logger.Warning("destroy session err:", err)
		}
	}
	m.ClearCookie(c)
}

// Middleware resolves the session cookie once per request and stores the
// user id in the gin context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userId, ok := m.Resolve(m.Token(c)); ok {
			c.Set(contextUserId, userId)
		}
		c.Next()
	}
}

// GetUserId returns the logged-in user id placed by Middleware.
func GetUserId(c *gin.Context) (string, bool) {
	userId := c.GetString(contextUserId)
	return userId, userId != ""
}

// IsLogin reports whether the request carries an active session.
func IsLogin(c *gin.Context) bool {
	_, ok := GetUserId(c)
	return ok
}
