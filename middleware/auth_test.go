package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func issueTestCredential(t *testing.T, registry *services.SessionRegistry) (string, *model.Session) {
	t.Helper()
	admin := &model.Admin{
		AdminID:  "admin-gate-test",
		Username: "gatetester",
		Email:    "gate@example.com",
	}
	token, session, err := services.IssueAdminCredential(registry, admin, "127.0.0.1", "Mozilla/5.0 Chrome/91.0")
	if err != nil {
		t.Fatalf("IssueAdminCredential failed: %v", err)
	}
	return token, session
}

func gateRouter(registry *services.SessionRegistry) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(registry), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"admin_id":   c.GetString("admin_id"),
			"session_id": c.GetString("session_id"),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	registry := services.NewSessionRegistry()
	router := gateRouter(registry)
	token, session := issueTestCredential(t, registry)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantError  string
	}{
		{
			name:       "No Header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token provided",
		},
		{
			name:       "Wrong Scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token provided",
		},
		{
			name:       "Garbage Token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid or expired token",
		},
		{
			name:       "Valid Credential",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" && !strings.Contains(w.Body.String(), tt.wantError) {
				t.Errorf("Body %s should contain %q", w.Body.String(), tt.wantError)
			}
		})
	}

	// The session exists; make sure context propagation carried the claims
	t.Run("Context Claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, session.SessionID) {
			t.Errorf("Response should carry session_id %s, got %s", session.SessionID, body)
		}
		if !strings.Contains(body, "admin-gate-test") {
			t.Errorf("Response should carry the admin_id, got %s", body)
		}
	})
}

func TestAuthMiddlewareRejectsRevokedSession(t *testing.T) {
	registry := services.NewSessionRegistry()
	router := gateRouter(registry)
	token, session := issueTestCredential(t, registry)

	// Valid signature, active session: admitted
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Active session should be admitted, got %d", w.Code)
	}

	// Same token after revocation: the signature is still valid but the
	// registry says no
	registry.RevokeByTokenID(session.SessionID)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Revoked session should be rejected, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Session revoked. Please login again.") {
		t.Errorf("Expected revocation message, got %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsStudentToken(t *testing.T) {
	registry := services.NewSessionRegistry()
	router := gateRouter(registry)

	student := &model.Student{StudentID: "student-1", Email: "s@example.com", Name: "S"}
	token, err := services.GenerateStudentToken(student)
	if err != nil {
		t.Fatalf("GenerateStudentToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Student token must not pass the admin gate, got %d", w.Code)
	}
}

func TestStudentAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/student", StudentAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"student_id": c.GetString("student_id")})
	})

	student := &model.Student{StudentID: "student-42", Email: "s42@example.com", Name: "S"}
	token, err := services.GenerateStudentToken(student)
	if err != nil {
		t.Fatalf("GenerateStudentToken failed: %v", err)
	}

	t.Run("Valid Student Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "student-42") {
			t.Errorf("Response should carry student_id, got %s", w.Body.String())
		}
	})

	t.Run("Admin Token Rejected", func(t *testing.T) {
		registry := services.NewSessionRegistry()
		adminToken, _ := issueTestCredential(t, registry)

		req := httptest.NewRequest(http.MethodGet, "/student", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Admin token must not pass the student gate, got %d", w.Code)
		}
	})

	t.Run("No Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})
}
