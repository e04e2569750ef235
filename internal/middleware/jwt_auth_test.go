package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateAndParseToken(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, "jane@example.com", "customer")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jane@example.com" || claims.Role != "customer" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "access" {
		t.Errorf("subject = %s, want access", claims.Subject)
	}

	claims, err = ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if claims.Subject != "refresh" {
		t.Errorf("subject = %s, want refresh", claims.Subject)
	}

	if _, err := ParseToken("garbage"); err == nil {
		t.Error("垃圾字符串不应解析通过")
	}
}

func newAuthTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", JWTAuth(), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/maybe", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestJWTAuth_Middleware(t *testing.T) {
	r := newAuthTestRouter()

	// 无 Token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无 Token: status = %d, want 401", w.Code)
	}

	// 非 Bearer 格式
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer: status = %d, want 401", w.Code)
	}

	// Refresh Token 不能当 Access Token 用
	_, refresh, err := GenerateTokenPair(1, "a@b.com", "customer")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Refresh 当 Access: status = %d, want 401", w.Code)
	}

	// 正常通过
	access, _, _ := GenerateTokenPair(1, "a@b.com", "customer")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("有效 Token: status = %d, want 200", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthTestRouter()

	customer, _, _ := GenerateTokenPair(1, "c@b.com", "customer")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("customer 访问 admin: status = %d, want 403", w.Code)
	}

	admin, _, _ := GenerateTokenPair(2, "a@b.com", "admin")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin 访问 admin: status = %d, want 200", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthTestRouter()

	// 匿名放行
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("匿名: status = %d, want 200", w.Code)
	}

	// 坏 Token 也放行，但不注入身份
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("坏 Token: status = %d, want 200", w.Code)
	}
}
