package services

import (
	"os"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

func testAdmin() *model.Admin {
	return &model.Admin{
		AdminID:  "admin-token-test",
		Username: "tokentester",
		Email:    "token@example.com",
	}
}

func TestIssueAdminCredential(t *testing.T) {
	registry := NewSessionRegistry()

	token, session, err := IssueAdminCredential(registry, testAdmin(), "10.0.0.1", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0")
	if err != nil {
		t.Fatalf("IssueAdminCredential failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a signed token")
	}
	if session == nil {
		t.Fatal("Expected a session")
	}

	t.Run("Claims Match Session", func(t *testing.T) {
		claims, err := ParseToken(token)
		if err != nil {
			t.Fatalf("ParseToken failed: %v", err)
		}
		if claims["admin_id"] != "admin-token-test" {
			t.Errorf("Wrong admin_id claim: %v", claims["admin_id"])
		}
		if claims["session_id"] != session.SessionID {
			t.Errorf("session_id claim %v does not match session %s", claims["session_id"], session.SessionID)
		}
		if claims["iss"] != utils.TokenIssuer {
			t.Errorf("Wrong issuer claim: %v", claims["iss"])
		}
	})

	t.Run("Session Registered", func(t *testing.T) {
		if !registry.IsActive(session.SessionID) {
			t.Error("Issued credential's session should be active")
		}
	})

	t.Run("Expiry Matches TTL", func(t *testing.T) {
		want := time.Duration(utils.JWTExpirationTime) * time.Second
		got := session.ExpiresAt.Sub(session.CreatedAt)
		if got != want {
			t.Errorf("Session TTL = %v, want %v", got, want)
		}
	})
}

func TestStudentToken(t *testing.T) {
	student := &model.Student{
		StudentID: "student-1",
		Name:      "Test Student",
		Email:     "student@example.com",
	}

	token, err := GenerateStudentToken(student)
	if err != nil {
		t.Fatalf("GenerateStudentToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims["role"] != "student" {
		t.Errorf("Expected role=student, got %v", claims["role"])
	}
	if claims["type"] != "student_auth" {
		t.Errorf("Expected type=student_auth, got %v", claims["type"])
	}
	if _, hasSession := claims["session_id"]; hasSession {
		t.Error("Student tokens must not carry a session_id")
	}
}

func TestPasswordResetToken(t *testing.T) {
	token, err := GeneratePasswordResetToken(testAdmin())
	if err != nil {
		t.Fatalf("GeneratePasswordResetToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims["type"] != "password_reset" {
		t.Errorf("Expected type=password_reset, got %v", claims["type"])
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Not A JWT", "not-a-token"},
		{"Tampered", "eyJhbGciOiJIUzI1NiJ9.eyJhZG1pbl9pZCI6IngifQ.bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token); err == nil {
				t.Errorf("ParseToken(%q) should fail", tt.token)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	password := "secure#pass123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == password {
		t.Fatal("Hash must not equal the plaintext")
	}

	ok, err := VerifyPassword(hash, password)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("Correct password should verify")
	}

	ok, err = VerifyPassword(hash, "wrong#pass123")
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if ok {
		t.Error("Wrong password must not verify")
	}

	if _, err := HashPassword("weak"); err == nil {
		t.Error("Passwords missing a number and special character should be rejected")
	}
}
