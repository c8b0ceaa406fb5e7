package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cixicommerce/cixi-admin/internal/app"
	"github.com/cixicommerce/cixi-admin/internal/media"
	"github.com/cixicommerce/cixi-admin/internal/session"
)

var server *WebServer

type WebServer struct {
	root     *echo.Echo
	appCtx   app.AppContext
	sessmgr  *session.Manager
	uploader *media.Uploader
	pub      *echo.Group
	api      *echo.Group
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Init assembles the echo server: request logging through zap, payload
// validation, the public and admin API groups and the shared context
// middleware every handler relies on.
func Init(appCtx app.AppContext, sessmgr *session.Manager, uploader *media.Uploader) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	ws := &WebServer{root: e, appCtx: appCtx, sessmgr: sessmgr, uploader: uploader}

	// Every handler can reach the db and application context.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextAppKey, appCtx)
			c.Set(ContextDBKey, appCtx.DB())
			c.Set(ContextSessKey, sessmgr)
			c.Set(ContextUploaderKey, uploader)
			return next(c)
		}
	})

	ws.pub = e.Group("/api")
	ws.api = e.Group("/api")
	ws.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(appCtx.Config().Web.Secret),
		TokenLookup: "cookie:" + sessmgr.CookieName + ",header:Authorization:Bearer ",
	}))
	ws.api.Use(requireAdmin(sessmgr))

	server = ws
	return ws
}

// Echo exposes the underlying engine for page registration and tests.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func (ws *WebServer) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return ws.root.Start(addr)
}

// requireAdmin resolves the token validated by the jwt middleware into a
// session identity and rejects non-admin callers.
func requireAdmin(sessmgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}
			ident, err := sessmgr.Parse(token.Raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if !ident.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			c.Set(ContextIdentityKey, ident)
			return next(c)
		}
	}
}

// PubGET registers an unauthenticated API route.
func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

// PubPOST registers an unauthenticated API route.
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// ApiGET registers an admin API route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers an admin API route.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPATCH registers an admin API route.
func ApiPATCH(path string, h echo.HandlerFunc) {
	server.api.PATCH(path, h)
}

// ApiDELETE registers an admin API route.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
