// Package session issues and reads the browser session. The credential
// exchange returns the resolved identity directly so callers can route on
// role without waiting for any propagation.
package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

// Identity is the read-only view of the authenticated user exposed to
// every consumer. Only login writes it, only logout clears it.
type Identity struct {
	UserID   int64  `json:"id,string"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (id Identity) IsAdmin() bool {
	return id.Role == domain.RoleAdmin
}

type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and parses session tokens and manages the session cookie.
type Manager struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

func NewManager(secret, cookieName string, expireHours int) *Manager {
	if expireHours <= 0 {
		expireHours = 24
	}
	if cookieName == "" {
		cookieName = "cixi_session"
	}
	return &Manager{Secret: secret, CookieName: cookieName, TTL: time.Duration(expireHours) * time.Hour}
}

// Issue creates a signed token for the user and returns it with the
// resolved identity.
func (m *Manager) Issue(user *domain.SysUser) (string, Identity, error) {
	ident := Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.Secret))
	if err != nil {
		return "", Identity{}, errors.Wrap(err, "sign session token")
	}
	return signed, ident, nil
}

// Parse validates a token string and returns the identity it carries.
func (m *Manager) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.Secret), nil
	})
	if err != nil {
		return Identity{}, errors.Wrap(err, "parse session token")
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid session token")
	}
	uid, _ := strconv.ParseInt(claims.Subject, 10, 64)
	return Identity{
		UserID:   uid,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

// SetCookie installs the session cookie on the response.
func (m *Manager) SetCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     m.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.TTL),
	})
}

// ClearCookie destroys the session cookie.
func (m *Manager) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Current reads the identity for the request, anonymous when no valid
// session is present. Views use this to gate admin affordances.
func (m *Manager) Current(c echo.Context) (Identity, bool) {
	cookie, err := c.Cookie(m.CookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, false
	}
	ident, err := m.Parse(cookie.Value)
	if err != nil {
		return Identity{}, false
	}
	return ident, true
}
