package adminapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/catalog"
	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/internal/webserver"
)

type productPayload struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *int64   `json:"categoryId"`
	Image       *string  `json:"image"`
}

type productUpdatePayload struct {
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPATCH("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// FetchProducts loads the full catalog with the denormalized category
// join, the single authoritative read every view filters over.
func FetchProducts(db *gorm.DB) ([]domain.Product, error) {
	var rows []domain.Product
	err := db.Preload("Category").Order("id").Find(&rows).Error
	return rows, err
}

func listProducts(c echo.Context) error {
	rows, err := FetchProducts(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	categoryID := cast.ToInt64(c.QueryParam("category"))
	q := c.QueryParam("q")
	return ok(c, catalog.Filter(rows, categoryID, q))
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Preload("Category").Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Producto no encontrado", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "El nombre es requerido", nil)
	}
	stock := 0
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_STOCK", "Stock debe ser mayor o igual a 0", nil)
		}
		stock = *payload.Stock
	}
	if payload.CategoryID != nil {
		var cat domain.Category
		if err := GetDB(c).Where("id = ?", *payload.CategoryID).First(&cat).Error; err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Categoría no encontrada", nil)
		}
	}

	now := time.Now()
	p := domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       stock,
		CategoryID:  payload.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if payload.Image != nil {
		p.Image = strings.TrimSpace(*payload.Image)
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	GetApp(c).PubAuthLog(GetIdentity(c).Username, c.RealIP(), "product:create", p.Name)
	_ = GetDB(c).Preload("Category").First(&p, p.ID)
	return created(c, p)
}

// updateProduct applies the inline row edit: exactly the provided fields,
// nothing else.
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Producto no encontrado", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.Price != nil {
		updates["price"] = *payload.Price
	}
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_STOCK", "Stock debe ser mayor o igual a 0", nil)
		}
		updates["stock"] = *payload.Stock
	}
	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	GetApp(c).PubAuthLog(GetIdentity(c).Username, c.RealIP(), "product:update", p.Name)
	_ = GetDB(c).Preload("Category").First(&p, id)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Producto no encontrado", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	if err := GetDB(c).Delete(&domain.Product{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	// best-effort media cleanup, the row is already gone
	if u := GetUploader(c); u != nil && p.ImagePublicID != "" {
		go func(publicID string) {
			if err := u.Destroy(context.Background(), publicID); err != nil {
				zap.L().Warn("failed to remove product image", zap.String("public_id", publicID), zap.Error(err))
			}
		}(p.ImagePublicID)
	}

	GetApp(c).PubAuthLog(GetIdentity(c).Username, c.RealIP(), "product:delete", p.Name)
	return ok(c, map[string]interface{}{"id": id})
}
