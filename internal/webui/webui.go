// Package webui serves the server-rendered views: auth forms, the product
// pricing catalog and the kit builder. Mutations redirect back to a fresh
// authoritative read, there is no optimistic local state.
package webui

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cixicommerce/cixi-admin/internal/app"
	"github.com/cixicommerce/cixi-admin/internal/media"
	"github.com/cixicommerce/cixi-admin/internal/session"
)

type Handler struct {
	appCtx   app.AppContext
	sessmgr  *session.Manager
	uploader *media.Uploader
}

// Register mounts the page routes and installs the template renderer.
func Register(e *echo.Echo, appCtx app.AppContext, sessmgr *session.Manager, uploader *media.Uploader) error {
	r, err := NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = r

	h := &Handler{appCtx: appCtx, sessmgr: sessmgr, uploader: uploader}

	e.GET("/", h.homePage)
	e.GET("/cart", h.cartPage)
	e.GET("/auth/login", h.loginPage)
	e.POST("/auth/login", h.loginSubmit)
	e.GET("/auth/register", h.registerPage)
	e.POST("/auth/register", h.registerSubmit)
	e.POST("/auth/logout", h.logoutSubmit)

	e.GET("/products/pricing", h.pricingPage)
	e.POST("/products", h.createProductSubmit, h.requireAdminPage)
	e.POST("/products/:id/save", h.saveProductSubmit, h.requireAdminPage)
	e.POST("/products/:id/delete", h.deleteProductSubmit, h.requireAdminPage)

	e.GET("/categories", h.categoriesPage, h.requireAdminPage)

	e.GET("/kits", h.kitCreatePage, h.requireAdminPage)
	e.POST("/kits", h.kitCreateSubmit, h.requireAdminPage)
	e.GET("/kits/:id", h.kitEditPage, h.requireAdminPage)
	e.POST("/kits/:id", h.kitEditSubmit, h.requireAdminPage)

	return nil
}

// page builds the common template envelope. The navbar is suppressed for
// the auth section.
func (h *Handler) page(c echo.Context, title string) *PageData {
	ident, loggedIn := h.sessmgr.Current(c)
	path := c.Request().URL.Path
	return &PageData{
		Title:    title,
		Path:     path,
		HideNav:  strings.HasPrefix(path, "/auth"),
		LoggedIn: loggedIn,
		Ident:    ident,
		IsAdmin:  loggedIn && ident.IsAdmin(),
		Toasts:   PopFlashes(c),
	}
}

// requireAdminPage guards admin pages; anonymous users land on login,
// non-admin users go home.
func (h *Handler) requireAdminPage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := h.sessmgr.Current(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		if !ident.IsAdmin() {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}

func (h *Handler) logoutSubmit(c echo.Context) error {
	h.sessmgr.ClearCookie(c)
	return c.Redirect(http.StatusFound, "/")
}
