package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/app"
	"github.com/cixicommerce/cixi-admin/internal/media"
	"github.com/cixicommerce/cixi-admin/internal/session"
	"github.com/cixicommerce/cixi-admin/internal/webserver"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

// GetApp returns the application context.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextAppKey).(app.AppContext)
}

// GetSession returns the session manager.
func GetSession(c echo.Context) *session.Manager {
	return c.Get(webserver.ContextSessKey).(*session.Manager)
}

// GetUploader returns the media uploader, nil when not configured.
func GetUploader(c echo.Context) *media.Uploader {
	u, _ := c.Get(webserver.ContextUploaderKey).(*media.Uploader)
	return u
}

// GetIdentity returns the authenticated identity on admin routes.
func GetIdentity(c echo.Context) session.Identity {
	ident, _ := c.Get(webserver.ContextIdentityKey).(session.Identity)
	return ident
}

type errorResponse struct {
	Code   string      `json:"code"`
	Error  string      `json:"error"`
	Detail interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorResponse{Code: code, Error: message, Detail: detail})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
