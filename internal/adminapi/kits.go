package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/internal/kitbuilder"
	"github.com/cixicommerce/cixi-admin/internal/webserver"
)

type kitItemPayload struct {
	ProductID int64       `json:"productId"`
	Quantity  interface{} `json:"quantity"`
}

type kitPayload struct {
	Name  string           `json:"name"`
	Items []kitItemPayload `json:"items"`
}

func registerKitRoutes() {
	webserver.PubGET("/kits", listKits)
	webserver.PubGET("/kits/:id", getKit)
	webserver.ApiPOST("/kits", createKit)
	webserver.ApiPATCH("/kits/:id", updateKit)
	webserver.ApiDELETE("/kits/:id", deleteKit)
}

// validateKitPayload enforces the submission contract: name first, then
// at least one item. Quantities are clamped, never rejected.
func validateKitPayload(c echo.Context, payload *kitPayload) ([]domain.KitItem, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return nil, fail(c, http.StatusBadRequest, "MISSING_NAME", "Ingresa un nombre para el kit", nil)
	}
	if len(payload.Items) == 0 {
		return nil, fail(c, http.StatusBadRequest, "EMPTY_KIT", "Selecciona al menos un producto", nil)
	}

	items := make([]domain.KitItem, 0, len(payload.Items))
	seen := map[int64]bool{}
	for i, it := range payload.Items {
		if it.ProductID <= 0 || seen[it.ProductID] {
			return nil, fail(c, http.StatusBadRequest, "INVALID_ITEM", "Producto inválido en el kit", nil)
		}
		seen[it.ProductID] = true
		var count int64
		GetDB(c).Model(&domain.Product{}).Where("id = ?", it.ProductID).Count(&count)
		if count == 0 {
			return nil, fail(c, http.StatusBadRequest, "INVALID_ITEM", "Producto no encontrado", it.ProductID)
		}
		items = append(items, domain.KitItem{
			ProductID: it.ProductID,
			Quantity:  kitbuilder.Clamp(it.Quantity),
			Sort:      i,
		})
	}
	return items, nil
}

func listKits(c echo.Context) error {
	var rows []domain.Kit
	if err := GetDB(c).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort")
	}).Order("id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query kits", err.Error())
	}
	return ok(c, rows)
}

func getKit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID", nil)
	}
	var kit domain.Kit
	err = GetDB(c).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort")
	}).Where("id = ?", id).First(&kit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Kit no encontrado", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query kit", err.Error())
	}
	return ok(c, kit)
}

func createKit(c echo.Context) error {
	var payload kitPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse kit", err.Error())
	}
	items, verr := validateKitPayload(c, &payload)
	if items == nil {
		return verr
	}

	kit := domain.Kit{
		Name:      payload.Name,
		Items:     items,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&kit).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create kit", err.Error())
	}

	GetApp(c).PubAuthLog(GetIdentity(c).Username, c.RealIP(), "kit:create", kit.Name)
	return created(c, kit)
}

// updateKit replaces the kit name and item list wholesale; the submitted
// selection is the new truth.
func updateKit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID", nil)
	}
	var kit domain.Kit
	if err := GetDB(c).Where("id = ?", id).First(&kit).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Kit no encontrado", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query kit", err.Error())
	}

	var payload kitPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse kit", err.Error())
	}
	items, verr := validateKitPayload(c, &payload)
	if items == nil {
		return verr
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
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
			"name":       payload.Name,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update kit", err.Error())
	}

	GetApp(c).PubAuthLog(GetIdentity(c).Username, c.RealIP(), "kit:update", payload.Name)
	kit.Name = payload.Name
	kit.Items = items
	return ok(c, kit)
}

func deleteKit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID", nil)
	}
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kit_id = ?", id).Delete(&domain.KitItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Kit{}, id).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete kit", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
