package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cixicommerce/cixi-admin/internal/webserver"
)

func registerUploadRoutes() {
	webserver.ApiPOST("/uploads", uploadImage)
}

// uploadImage proxies a multipart image to Cloudinary so credentials stay
// server-side. Returns {secure_url, public_id}.
func uploadImage(c echo.Context) error {
	u := GetUploader(c)
	if u == nil {
		return fail(c, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Image uploads are not configured", nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "Archivo requerido", nil)
	}
	res, err := u.Upload(c.Request().Context(), fh)
	if err != nil {
		return fail(c, http.StatusBadGateway, "UPLOAD_FAILED", "No se pudo subir la imagen", err.Error())
	}
	return ok(c, res)
}
