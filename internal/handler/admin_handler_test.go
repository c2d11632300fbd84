package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/summitlink/internal/db"
	"golang.org/x/crypto/bcrypt"
)

type stubHTMLRender struct{}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func newAuthTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	engine := gin.New()
	engine.HTMLRender = &stubHTMLRender{}
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("summitlink_session", store))

	engine.POST("/admin/login", Login)
	engine.GET("/admin/logout", Logout)

	protected := engine.Group("/admin")
	protected.Use(AuthRequired())
	protected.GET("/contacts", func(c *gin.Context) {
		c.String(http.StatusOK, "console")
	})

	return engine
}

func seedModerator(t *testing.T, username, password string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.DB.Create(&db.User{Username: username, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed moderator: %v", err)
	}
}

func TestAuthRequiredRedirectsWhenUnauthenticated(t *testing.T) {
	_, _, cleanup := setupTestDB(t)
	defer cleanup()

	engine := newAuthTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	_, _, cleanup := setupTestDB(t)
	defer cleanup()

	seedModerator(t, "organizer", "summit-secret")
	engine := newAuthTestEngine(t)

	// 错误密码不应建立会话
	form := url.Values{"username": {"organizer"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password should yield 401, got %d", w.Code)
	}

	// 正确凭据登录后重定向到审核控制台
	form.Set("password", "summit-secret")
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/contacts" {
		t.Fatalf("expected redirect to console, got %q", loc)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login should set a session cookie")
	}

	// 携带会话可以访问受保护页面
	req = httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated request should pass, got %d", w.Code)
	}

	// 登出清除会话
	req = httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", w.Code)
	}

	loggedOut := w.Result().Cookies()
	req = httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	for _, ck := range loggedOut {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("logged-out session should redirect, got %d", w.Code)
	}
}
