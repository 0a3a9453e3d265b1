package services

import (
	"fmt"
	"time"

	"main/model"
	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// IssueAdminCredential signs an access credential for a verified admin and
// registers the matching session. Issuance is atomic from the caller's point
// of view: if the registry rejects the session, no token is returned.
func IssueAdminCredential(registry *SessionRegistry, admin *model.Admin, ip, userAgent string) (string, *model.Session, error) {
	sessionID := utils.GenerateSessionID()
	now := time.Now()
	expiresAt := now.Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"admin_id":   admin.AdminID,
		"username":   admin.Username,
		"email":      admin.Email,
		"session_id": sessionID,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
		"iss":        utils.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign credential: %w", err)
	}

	session := &model.Session{
		SessionID:      sessionID,
		AdminID:        admin.AdminID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     utils.DescribeDevice(userAgent),
		IPAddress:      ip,
		CreatedAt:      now,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
	}

	if err := registry.CreateSession(session); err != nil {
		return "", nil, fmt.Errorf("failed to register session: %w", err)
	}

	return signedToken, session, nil
}

// GenerateStudentToken signs an access token for the student area. Student
// tokens carry no session id; they are not tracked by the registry.
func GenerateStudentToken(student *model.Student) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"student_id": student.StudentID,
		"email":      student.Email,
		"name":       student.Name,
		"role":       "student",
		"type":       "student_auth",
		"iat":        now.Unix(),
		"exp":        now.Add(time.Duration(utils.StudentTokenExpiration) * time.Second).Unix(),
		"iss":        utils.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GeneratePasswordResetToken signs a short-lived token for the reset flow.
func GeneratePasswordResetToken(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"admin_id": admin.AdminID,
		"email":    admin.Email,
		"type":     "password_reset",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(utils.ResetTokenExpirationSec) * time.Second).Unix(),
		"iss":      utils.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Only HMAC-signed tokens are accepted.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
