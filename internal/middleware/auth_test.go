package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/pkg/jwt"
)

func newAuthTestRouter(jwtManager *jwt.Manager) (*httptest.ResponseRecorder, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(jwtManager))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"name":    GetUserName(c),
			"role":    GetUserRole(c),
		})
	})
	return w, r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15)
	token, err := jwtManager.GenerateToken("user-a", "Ana", "ana@office.test", "Advogado")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w, r := newAuthTestRouter(jwtManager)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15)

	w, r := newAuthTestRouter(jwtManager)
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15)

	w, r := newAuthTestRouter(jwtManager)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	issuer := jwt.NewManager("issuer-secret-key-for-testing-32bytes", 15)
	verifier := jwt.NewManager("different-secret-key-for-tests-32byte", 15)
	token, err := issuer.GenerateToken("user-a", "Ana", "ana@office.test", "Advogado")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w, r := newAuthTestRouter(verifier)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
