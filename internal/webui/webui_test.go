package webui_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cixicommerce/cixi-admin/config"
	"github.com/cixicommerce/cixi-admin/internal/app"
	"github.com/cixicommerce/cixi-admin/internal/domain"
	"github.com/cixicommerce/cixi-admin/internal/session"
	"github.com/cixicommerce/cixi-admin/internal/webui"
	"github.com/cixicommerce/cixi-admin/pkg/common"
)

type pageEnv struct {
	echo    *echo.Echo
	app     *app.Application
	sessmgr *session.Manager
	db      *gorm.DB
}

func newPageEnv(t *testing.T) *pageEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultAppConfig
	a := app.NewApplication(&cfg)
	a.OverrideDB(db)
	if err := a.MigrateDB(false); err != nil {
		t.Fatal(err)
	}
	sessmgr := session.NewManager(cfg.Web.Secret, cfg.Session.CookieName, 1)
	e := echo.New()
	if err := webui.Register(e, a, sessmgr, nil); err != nil {
		t.Fatal(err)
	}
	return &pageEnv{echo: e, app: a, sessmgr: sessmgr, db: db}
}

func (env *pageEnv) seedUser(t *testing.T, email, password, role string) *domain.SysUser {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	user := domain.SysUser{
		ID:       common.UUIDint64(),
		Username: strings.Split(email, "@")[0],
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := env.db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return &user
}

func (env *pageEnv) sessionCookie(t *testing.T, user *domain.SysUser) *http.Cookie {
	t.Helper()
	token, _, err := env.sessmgr.Issue(user)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: env.sessmgr.CookieName, Value: token}
}

func (env *pageEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *pageEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func TestLoginRedirectsByRole(t *testing.T) {
	env := newPageEnv(t)
	env.seedUser(t, "admin@cixi.shop", "clave1", domain.RoleAdmin)
	env.seedUser(t, "ana@x.com", "clave2", domain.RoleCustomer)

	rec := env.postForm("/auth/login", url.Values{
		"email": {"admin@cixi.shop"}, "password": {"clave1"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("admin login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/products/pricing" {
		t.Errorf("admin redirect = %q, want /products/pricing", loc)
	}
	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == env.sessmgr.CookieName && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("login did not set a session cookie")
	}

	rec = env.postForm("/auth/login", url.Values{
		"email": {"ana@x.com"}, "password": {"clave2"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("customer login status = %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Errorf("customer redirect = %q, want /", loc)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newPageEnv(t)
	env.seedUser(t, "ana@x.com", "clave", domain.RoleCustomer)

	rec := env.postForm("/auth/login", url.Values{
		"email": {"ana@x.com"}, "password": {"mala"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Credenciales inválidas") {
		t.Error("rejection message missing from re-rendered form")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "" {
		t.Errorf("unexpected redirect to %q", loc)
	}
}

func TestRegisterMismatchBlocksBeforeStore(t *testing.T) {
	env := newPageEnv(t)

	rec := env.postForm("/auth/register", url.Values{
		"username":        {"ana"},
		"email":           {"ana@x.com"},
		"password":        {"clave1"},
		"confirmPassword": {"clave2"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Contraseña no coincide") {
		t.Error("mismatch message missing")
	}
	var count int64
	env.db.Model(&domain.SysUser{}).Count(&count)
	if count != 0 {
		t.Errorf("user stored despite mismatch, count = %d", count)
	}
}

func TestRegisterSuccess(t *testing.T) {
	env := newPageEnv(t)

	rec := env.postForm("/auth/register", url.Values{
		"username":        {"ana"},
		"email":           {"ana@x.com"},
		"password":        {"clave"},
		"confirmPassword": {"clave"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Errorf("redirect = %q, want /auth/login", loc)
	}
	var user domain.SysUser
	if err := env.db.Where("email = ?", "ana@x.com").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("role = %q, want customer", user.Role)
	}
}

func TestAdminPagesGated(t *testing.T) {
	env := newPageEnv(t)
	customer := env.seedUser(t, "ana@x.com", "clave", domain.RoleCustomer)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)

	rec := env.get("/kits")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/auth/login" {
		t.Errorf("anonymous: status %d location %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = env.get("/kits", env.sessionCookie(t, customer))
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Errorf("customer: status %d location %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = env.get("/kits", env.sessionCookie(t, admin))
	if rec.Code != http.StatusOK {
		t.Errorf("admin: status %d", rec.Code)
	}
}

func TestKitFormValidationOrder(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)
	ck := env.sessionCookie(t, admin)

	// no name and no items: the name message wins
	rec := env.postForm("/kits", url.Values{"name": {"  "}}, ck)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Ingresa un nombre para el kit") {
		t.Error("name message missing")
	}

	rec = env.postForm("/kits", url.Values{"name": {"Kit de baño"}}, ck)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Selecciona al menos un producto") {
		t.Error("empty selection message missing")
	}

	var count int64
	env.db.Model(&domain.Kit{}).Count(&count)
	if count != 0 {
		t.Errorf("kit stored despite failed validation, count = %d", count)
	}
}

func TestKitCreateSubmit(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)
	for _, name := range []string{"Jabón", "Toalla"} {
		if err := env.db.Create(&domain.Product{Name: name}).Error; err != nil {
			t.Fatal(err)
		}
	}

	rec := env.postForm("/kits", url.Values{
		"name":  {"Kit de baño"},
		"item":  {"1", "2"},
		"qty_1": {"3.7"},
		"qty_2": {"0"},
	}, env.sessionCookie(t, admin))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/kits" {
		t.Errorf("redirect = %q, want /kits", loc)
	}

	var kit domain.Kit
	if err := env.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort")
	}).First(&kit).Error; err != nil {
		t.Fatal(err)
	}
	if kit.Name != "Kit de baño" || len(kit.Items) != 2 {
		t.Fatalf("kit = %+v", kit)
	}
	// fractional quantity floors, zero seeds back to one
	if kit.Items[0].ProductID != 1 || kit.Items[0].Quantity != 3 {
		t.Errorf("item 0 = %+v", kit.Items[0])
	}
	if kit.Items[1].ProductID != 2 || kit.Items[1].Quantity != 1 {
		t.Errorf("item 1 = %+v", kit.Items[1])
	}
}

func TestDeleteWithoutConfirmIsNoop(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)
	if err := env.db.Create(&domain.Product{Name: "Jabón"}).Error; err != nil {
		t.Fatal(err)
	}
	ck := env.sessionCookie(t, admin)

	rec := env.postForm("/products/1/delete", url.Values{}, ck)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var count int64
	env.db.Model(&domain.Product{}).Count(&count)
	if count != 1 {
		t.Fatalf("product deleted without confirmation")
	}

	rec = env.postForm("/products/1/delete", url.Values{"confirm": {"1"}}, ck)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	env.db.Model(&domain.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("product survived confirmed delete")
	}
}

func TestProductInlineSave(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)
	price := 5.0
	if err := env.db.Create(&domain.Product{Name: "Jabón", Price: &price, Stock: 2}).Error; err != nil {
		t.Fatal(err)
	}

	rec := env.postForm("/products/1/save", url.Values{
		"price": {"12.50"},
		"stock": {"7"},
	}, env.sessionCookie(t, admin))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}

	var p domain.Product
	if err := env.db.First(&p, 1).Error; err != nil {
		t.Fatal(err)
	}
	if p.Price == nil || *p.Price != 12.50 || p.Stock != 7 {
		t.Fatalf("product after save = %+v", p)
	}
}

func TestInlineSaveLeavesBlankFieldsAlone(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)
	price := 5.0
	if err := env.db.Create(&domain.Product{Name: "Jabón", Price: &price, Stock: 2}).Error; err != nil {
		t.Fatal(err)
	}
	ck := env.sessionCookie(t, admin)

	rec := env.postForm("/products/1/save", url.Values{
		"price": {""},
		"stock": {""},
	}, ck)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var p domain.Product
	if err := env.db.First(&p, 1).Error; err != nil {
		t.Fatal(err)
	}
	if p.Price == nil || *p.Price != 5.0 || p.Stock != 2 {
		t.Fatalf("blank submit changed the row: %+v", p)
	}

	// a negative stock snaps to zero, price untouched
	rec = env.postForm("/products/1/save", url.Values{
		"stock": {"-3"},
	}, ck)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := env.db.First(&p, 1).Error; err != nil {
		t.Fatal(err)
	}
	if p.Stock != 0 || p.Price == nil || *p.Price != 5.0 {
		t.Fatalf("product after negative stock = %+v", p)
	}
}

func TestCreateProductBlankPriceStoresNull(t *testing.T) {
	env := newPageEnv(t)
	admin := env.seedUser(t, "admin@cixi.shop", "clave", domain.RoleAdmin)

	rec := env.postForm("/products", url.Values{
		"name":  {"Vela"},
		"price": {""},
		"stock": {""},
	}, env.sessionCookie(t, admin))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}

	var p domain.Product
	if err := env.db.Where("name = ?", "Vela").First(&p).Error; err != nil {
		t.Fatal(err)
	}
	if p.Price != nil {
		t.Errorf("price = %v, want null", *p.Price)
	}
	if p.Stock != 0 {
		t.Errorf("stock = %d, want 0", p.Stock)
	}
}
