package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/internal/webserver"
	"github.com/cixicommerce/cixi-admin/pkg/common"
)

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", loginUser)
	webserver.PubPOST("/auth/logout", logoutUser)
}

type registerPayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  *domain.SysUser `json:"user"`
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Todos los campos son requeridos", nil)
	}

	var dup domain.SysUser
	err := GetDB(c).Where("email = ? OR username = ?", payload.Email, payload.Username).First(&dup).Error
	if err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_USER", "El usuario ya existe", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}

	user := domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  strings.TrimSpace(payload.Username),
		Email:     strings.TrimSpace(payload.Email),
		Password:  string(hashed),
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}

	GetApp(c).PubAuthLog(user.Username, c.RealIP(), "register", user.Email)
	return created(c, &user)
}

// loginUser exchanges credentials for a session. The resolved identity is
// returned in the response body so the caller routes on role immediately,
// with no propagation wait.
func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email y contraseña requeridos", nil)
	}

	var user domain.SysUser
	err := GetDB(c).Where("email = ?", payload.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales inválidas", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales inválidas", nil)
	}

	token, _, err := GetSession(c).Issue(&user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to issue session", nil)
	}
	GetSession(c).SetCookie(c, token)

	GetDB(c).Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())
	GetApp(c).PubAuthLog(user.Username, c.RealIP(), "login", user.Email)

	return ok(c, loginResponse{Token: token, User: &user})
}

func logoutUser(c echo.Context) error {
	GetSession(c).ClearCookie(c)
	return ok(c, map[string]interface{}{"ok": true})
}
