package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

func protectedRouter(t *testing.T, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": c.GetString(CtxEmailKey),
			"role":  c.GetString(CtxRoleKey),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueTokenRoundtrip(t *testing.T) {
	svc := NewService(testSecret)
	token, err := svc.IssueToken("dev@acme.test", "manager")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := get(protectedRouter(t), token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["email"] != "dev@acme.test" || out["role"] != "manager" {
		t.Errorf("claims = %v", out)
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	if _, err := NewService(testSecret).IssueToken("", "manager"); err != ErrMissingEmail {
		t.Errorf("err = %v, want ErrMissingEmail", err)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	w := get(protectedRouter(t), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	other := NewService([]byte("other-secret"))
	token, err := other.IssueToken("dev@acme.test", "manager")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := get(protectedRouter(t), token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsGarbage(t *testing.T) {
	w := get(protectedRouter(t), "not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	token, err := NewService(testSecret).IssueToken("mgr@acme.test", "manager")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := get(protectedRouter(t, "manager", "admin"), token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	token, err := NewService(testSecret).IssueToken("dev@acme.test", "requester")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := get(protectedRouter(t, "manager", "admin"), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestIssueTokenEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewService(testSecret))

	body, _ := json.Marshal(TokenRequest{Email: "dev@acme.test", Role: "requester"})
	req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["token"] == "" {
		t.Error("token is empty")
	}
}
