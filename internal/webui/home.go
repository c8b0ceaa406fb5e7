package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/domain"
)

type homeView struct {
	Kits     []domain.Kit
	Products []domain.Product
}

func (h *Handler) homePage(c echo.Context) error {
	var kits []domain.Kit
	_ = h.appCtx.DB().Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort")
	}).Order("id").Find(&kits).Error

	var products []domain.Product
	_ = h.appCtx.DB().Preload("Category").Order("id").Find(&products).Error

	data := h.page(c, "CIXI")
	data.Data = homeView{Kits: kits, Products: products}
	return c.Render(http.StatusOK, "home", data)
}

// cartPage is a placeholder: checkout is out of scope, the navbar link
// still needs somewhere to land.
func (h *Handler) cartPage(c echo.Context) error {
	PushFlash(c, "info", "El carrito estará disponible pronto")
	return c.Redirect(http.StatusFound, "/")
}
