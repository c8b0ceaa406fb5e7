package webui

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/cixicommerce/cixi-admin/internal/adminapi"
	"github.com/cixicommerce/cixi-admin/internal/catalog"
	"github.com/cixicommerce/cixi-admin/internal/domain"
)

type pricingView struct {
	Products   []domain.Product
	Categories []domain.Category
	CategoryID int64
	Search     string
}

// pricingPage renders the catalog. Category and search filtering happen
// over the single fetched set, category match first, then the
// case-insensitive substring search.
func (h *Handler) pricingPage(c echo.Context) error {
	products, err := adminapi.FetchProducts(h.appCtx.DB())
	if err != nil {
		products = nil
		zap.L().Error("failed to load products", zap.Error(err))
	}
	// a category load failure degrades to an empty dropdown, never a
	// failed page
	var categories []domain.Category
	if err := h.appCtx.DB().Order("name").Find(&categories).Error; err != nil {
		categories = nil
		zap.L().Warn("failed to load categories", zap.Error(err))
	}

	categoryID := cast.ToInt64(c.QueryParam("category"))
	search := c.QueryParam("q")

	data := h.page(c, "Productos")
	data.Data = pricingView{
		Products:   catalog.Filter(products, categoryID, search),
		Categories: categories,
		CategoryID: categoryID,
		Search:     search,
	}
	return c.Render(http.StatusOK, "pricing", data)
}

// createProductSubmit handles the admin create form. A blank price stores
// null, a blank stock stores 0. A failed image upload does not block the
// create: the product is stored without an image and a warning toast is
// queued.
func (h *Handler) createProductSubmit(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		PushFlash(c, "warn", "El nombre es requerido")
		return c.Redirect(http.StatusFound, "/products/pricing")
	}

	p := domain.Product{
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		p.Description = &desc
	}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price := cast.ToFloat64(raw)
		p.Price = &price
	}
	if raw := strings.TrimSpace(c.FormValue("stock")); raw != "" {
		stock := cast.ToInt(raw)
		if stock < 0 {
			stock = 0
		}
		p.Stock = stock
	}
	if raw := strings.TrimSpace(c.FormValue("categoryId")); raw != "" {
		catID := cast.ToInt64(raw)
		var count int64
		h.appCtx.DB().Model(&domain.Category{}).Where("id = ?", catID).Count(&count)
		if count > 0 {
			p.CategoryID = &catID
		}
	}

	if fh, err := c.FormFile("image"); err == nil && h.uploader != nil {
		res, uerr := h.uploader.Upload(c.Request().Context(), fh)
		if uerr != nil {
			zap.L().Warn("product image upload failed", zap.String("product", name), zap.Error(uerr))
			PushFlash(c, "warn", "No se pudo subir la imagen, el producto se creó sin imagen")
		} else {
			p.Image = res.SecureURL
			p.ImagePublicID = res.PublicID
		}
	}

	if err := h.appCtx.DB().Create(&p).Error; err != nil {
		zap.L().Error("failed to create product", zap.Error(err))
		PushFlash(c, "error", "No se pudo crear el producto")
		return c.Redirect(http.StatusFound, "/products/pricing")
	}

	ident, _ := h.sessmgr.Current(c)
	h.appCtx.PubAuthLog(ident.Username, c.RealIP(), "product:create", p.Name)
	PushFlash(c, "success", "Producto creado")
	return c.Redirect(http.StatusFound, "/products/pricing")
}

// saveProductSubmit is the inline row edit: exactly the submitted fields,
// price and stock only. Blank inputs leave the stored value alone.
func (h *Handler) saveProductSubmit(c echo.Context) error {
	id := cast.ToInt64(c.Param("id"))
	updates := map[string]interface{}{"updated_at": time.Now()}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		updates["price"] = cast.ToFloat64(raw)
	}
	if raw := strings.TrimSpace(c.FormValue("stock")); raw != "" {
		stock := cast.ToInt(raw)
		if stock < 0 {
			stock = 0
		}
		updates["stock"] = stock
	}
	result := h.appCtx.DB().Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil || result.RowsAffected == 0 {
		PushFlash(c, "error", "No se pudo guardar el producto")
	} else {
		PushFlash(c, "success", "Producto actualizado")
	}
	return c.Redirect(http.StatusFound, "/products/pricing")
}

// deleteProductSubmit deletes only when the confirmation field was
// submitted; otherwise nothing is issued and the list stays untouched.
func (h *Handler) deleteProductSubmit(c echo.Context) error {
	if c.FormValue("confirm") != "1" {
		return c.Redirect(http.StatusFound, "/products/pricing")
	}
	id := cast.ToInt64(c.Param("id"))
	var p domain.Product
	if err := h.appCtx.DB().First(&p, id).Error; err != nil {
		PushFlash(c, "error", "Producto no encontrado")
		return c.Redirect(http.StatusFound, "/products/pricing")
	}
	if err := h.appCtx.DB().Delete(&domain.Product{}, id).Error; err != nil {
		PushFlash(c, "error", "No se pudo eliminar el producto")
		return c.Redirect(http.StatusFound, "/products/pricing")
	}
	ident, _ := h.sessmgr.Current(c)
	h.appCtx.PubAuthLog(ident.Username, c.RealIP(), "product:delete", p.Name)
	PushFlash(c, "success", "Producto eliminado")
	return c.Redirect(http.StatusFound, "/products/pricing")
}

func (h *Handler) categoriesPage(c echo.Context) error {
	var categories []domain.Category
	if err := h.appCtx.DB().Order("name").Find(&categories).Error; err != nil {
		categories = nil
	}
	data := h.page(c, "Categorías")
	data.Data = categories
	return c.Render(http.StatusOK, "categories", data)
}
