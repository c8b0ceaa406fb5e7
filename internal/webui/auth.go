package webui

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/pkg/common"
)

func (h *Handler) loginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", h.page(c, "Iniciar sesión"))
}

// loginSubmit exchanges credentials for a session and redirects by the
// role the exchange itself returned. There is no propagation delay to
// wait out: the identity is known before the redirect is written.
func (h *Handler) loginSubmit(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	data := h.page(c, "Iniciar sesión")
	data.FieldErrors = map[string]string{}
	if email == "" {
		data.FieldErrors["email"] = "Email requerido"
	}
	if password == "" {
		data.FieldErrors["password"] = "Contraseña requerida"
	}
	if len(data.FieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "login", data)
	}

	var user domain.SysUser
	err := h.appCtx.DB().Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		(err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil) {
		data.Alert = "Credenciales inválidas"
		return c.Render(http.StatusUnauthorized, "login", data)
	}
	if err != nil {
		data.Alert = "Error interno, intenta de nuevo"
		return c.Render(http.StatusInternalServerError, "login", data)
	}

	token, ident, err := h.sessmgr.Issue(&user)
	if err != nil {
		data.Alert = "Error interno, intenta de nuevo"
		return c.Render(http.StatusInternalServerError, "login", data)
	}
	h.sessmgr.SetCookie(c, token)
	h.appCtx.DB().Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())
	h.appCtx.PubAuthLog(user.Username, c.RealIP(), "login", user.Email)

	if ident.IsAdmin() {
		return c.Redirect(http.StatusFound, "/products/pricing")
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) registerPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", h.page(c, "Registro"))
}

func (h *Handler) registerSubmit(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirmPassword")

	data := h.page(c, "Registro")
	data.FieldErrors = map[string]string{}
	if username == "" {
		data.FieldErrors["username"] = "Nombre de usuario requerido"
	}
	if email == "" {
		data.FieldErrors["email"] = "E-mail requerido"
	}
	if password == "" {
		data.FieldErrors["password"] = "Contraseña requerida"
	}
	if confirm == "" {
		data.FieldErrors["confirmPassword"] = "Confirmación requerida"
	}
	if len(data.FieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "register", data)
	}
	// checked before anything touches the store
	if password != confirm {
		data.Alert = "Contraseña no coincide"
		return c.Render(http.StatusBadRequest, "register", data)
	}

	var dup domain.SysUser
	err := h.appCtx.DB().Where("email = ? OR username = ?", email, username).First(&dup).Error
	if err == nil {
		data.Alert = "El usuario ya existe"
		return c.Render(http.StatusConflict, "register", data)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		data.Alert = "Error interno, intenta de nuevo"
		return c.Render(http.StatusInternalServerError, "register", data)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		data.Alert = "Error interno, intenta de nuevo"
		return c.Render(http.StatusInternalServerError, "register", data)
	}
	user := domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.appCtx.DB().Create(&user).Error; err != nil {
		data.Alert = "El usuario ya existe"
		return c.Render(http.StatusConflict, "register", data)
	}

	PushFlash(c, "success", "Usuario creado con éxito")
	return c.Redirect(http.StatusFound, "/auth/login")
}
