package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamepulse/dashboard/pkg/jwt"

	"github.com/gin-gonic/gin"
)

var secret = []byte("test-secret")

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.GenerateToken("tester", role, secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"not admin", "Bearer " + token(t, "viewer"), http.StatusForbidden},
		{"admin", "Bearer " + token(t, jwt.AdminRole), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalAuthMiddleware(secret))
	r.GET("/", func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	for header, want := range map[string]string{
		"":                                  "anonymous",
		"Bearer garbage":                    "anonymous",
		"Bearer " + token(t, jwt.AdminRole): "admin",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Errorf("header %q: %d %q, want %q", header, w.Code, w.Body.String(), want)
		}
	}
}
