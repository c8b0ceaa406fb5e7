package webui

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	flashCookieName = "cixi_flash"
	flashPendingKey = "flash_pending"
)

// Flash is a one-shot toast message: rendered on the next page load,
// then gone. Levels: info, warn, error, success.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// PushFlash queues a toast for the next rendered page. Pushes within one
// request accumulate: the first push seeds from the request cookie, later
// pushes append, and the cookie always carries the full pending list.
func PushFlash(c echo.Context, level, message string) {
	pending, seeded := c.Get(flashPendingKey).([]Flash)
	if !seeded {
		pending = readFlashes(c)
	}
	pending = append(pending, Flash{Level: level, Message: message})
	c.Set(flashPendingKey, pending)
	writeFlashCookie(c, pending)
}

// writeFlashCookie replaces any flash Set-Cookie header written earlier in
// the request so the response never carries two of them.
func writeFlashCookie(c echo.Context, toasts []Flash) {
	data, err := json.Marshal(toasts)
	if err != nil {
		return
	}
	header := c.Response().Header()
	prev := header.Values("Set-Cookie")
	header.Del("Set-Cookie")
	for _, v := range prev {
		if !strings.HasPrefix(v, flashCookieName+"=") {
			header.Add("Set-Cookie", v)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlashes returns the queued toasts and clears the cookie.
func PopFlashes(c echo.Context) []Flash {
	toasts := readFlashes(c)
	if len(toasts) > 0 {
		c.SetCookie(&http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}
	return toasts
}

func readFlashes(c echo.Context) []Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var toasts []Flash
	if err := json.Unmarshal(data, &toasts); err != nil {
		return nil
	}
	return toasts
}
