package webui

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/adminapi"
	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/internal/kitbuilder"
)

type kitView struct {
	KitID     int64
	Name      string
	Products  []domain.Product
	Selection kitbuilder.Selection
}

func (h *Handler) kitCreatePage(c echo.Context) error {
	products, _ := adminapi.FetchProducts(h.appCtx.DB())
	data := h.page(c, "Crear kit")
	data.Data = kitView{Products: products, Selection: kitbuilder.Selection{}}
	return c.Render(http.StatusOK, "kit_new", data)
}

func (h *Handler) kitEditPage(c echo.Context) error {
	id := cast.ToInt64(c.Param("id"))
	var kit domain.Kit
	err := h.appCtx.DB().Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort")
	}).First(&kit, id).Error
	if err != nil {
		PushFlash(c, "error", "Kit no encontrado")
		return c.Redirect(http.StatusFound, "/")
	}
	products, _ := adminapi.FetchProducts(h.appCtx.DB())
	data := h.page(c, "Editar kit")
	data.Data = kitView{
		KitID:     kit.ID,
		Name:      kit.Name,
		Products:  products,
		Selection: kitbuilder.FromItems(kit.Items),
	}
	return c.Render(http.StatusOK, "kit_edit", data)
}

// decodeSelection rebuilds the selection state from the submitted picker
// form: one checkbox per product plus a quantity input for checked rows.
func decodeSelection(c echo.Context) kitbuilder.Selection {
	sel := kitbuilder.Selection{}
	form, err := c.FormParams()
	if err != nil {
		return sel
	}
	for _, raw := range form["item"] {
		id := cast.ToInt64(raw)
		if id <= 0 {
			continue
		}
		sel.Toggle(id, true)
		if qty := c.FormValue("qty_" + raw); qty != "" {
			sel.SetQuantity(id, qty)
		}
	}
	return sel
}

// validateKitForm enforces the submission order: name first, then the
// selection. The returned flash is zero when submission may proceed.
func validateKitForm(name string, sel kitbuilder.Selection) (Flash, bool) {
	if strings.TrimSpace(name) == "" {
		return Flash{Level: "warn", Message: "Ingresa un nombre para el kit"}, false
	}
	if len(sel) == 0 {
		return Flash{Level: "info", Message: "Selecciona al menos un producto"}, false
	}
	return Flash{}, true
}

func (h *Handler) kitCreateSubmit(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	sel := decodeSelection(c)
	if flash, ok := validateKitForm(name, sel); !ok {
		return h.renderKitForm(c, "kit_new", "Crear kit", kitView{Name: name, Selection: sel}, flash)
	}

	kit := domain.Kit{
		Name:      name,
		Items:     sel.Items(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.appCtx.DB().Create(&kit).Error; err != nil {
		zap.L().Error("failed to create kit", zap.Error(err))
		return h.renderKitForm(c, "kit_new", "Crear kit", kitView{Name: name, Selection: sel},
			Flash{Level: "error", Message: "No se pudo crear el kit"})
	}

	ident, _ := h.sessmgr.Current(c)
	h.appCtx.PubAuthLog(ident.Username, c.RealIP(), "kit:create", kit.Name)
	// success resets the form: redirect back to an empty builder
	PushFlash(c, "success", "Kit creado exitosamente")
	return c.Redirect(http.StatusFound, "/kits")
}

func (h *Handler) kitEditSubmit(c echo.Context) error {
	id := cast.ToInt64(c.Param("id"))
	var kit domain.Kit
	if err := h.appCtx.DB().First(&kit, id).Error; err != nil {
		PushFlash(c, "error", "Kit no encontrado")
		return c.Redirect(http.StatusFound, "/")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	sel := decodeSelection(c)
	view := kitView{KitID: id, Name: name, Selection: sel}
	if flash, ok := validateKitForm(name, sel); !ok {
		return h.renderKitForm(c, "kit_edit", "Editar kit", view, flash)
	}

	items := sel.Items()
	err := h.appCtx.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kit_id = ?", id).Delete(&domain.KitItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].KitID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Kit{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		zap.L().Error("failed to update kit", zap.Error(err))
		return h.renderKitForm(c, "kit_edit", "Editar kit", view,
			Flash{Level: "error", Message: "No se pudo actualizar el kit"})
	}

	ident, _ := h.sessmgr.Current(c)
	h.appCtx.PubAuthLog(ident.Username, c.RealIP(), "kit:update", name)
	PushFlash(c, "success", "Kit actualizado")
	return c.Redirect(http.StatusFound, "/")
}

// renderKitForm re-renders the builder with the submitted state intact;
// a failed submission never resets what the admin typed.
func (h *Handler) renderKitForm(c echo.Context, tmpl, title string, view kitView, flash Flash) error {
	products, _ := adminapi.FetchProducts(h.appCtx.DB())
	view.Products = products
	data := h.page(c, title)
	data.Data = view
	if flash.Message != "" {
		data.Toasts = append(data.Toasts, flash)
	}
	return c.Render(http.StatusBadRequest, tmpl, data)
}
