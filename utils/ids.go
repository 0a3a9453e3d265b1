package utils

import (
	"log"

	"github.com/google/uuid"
)

func GenerateAdminID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		log.Fatal("Failed to generate a unique ID", err)
	}
	return id.String()
}

func GenerateStudentID() string {
	return uuid.New().String()
}

// GenerateSessionID returns a fresh random session identifier. uuid v4 draws
// from crypto/rand, which keeps session ids unpredictable.
func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateCertificateUUID() string {
	return uuid.New().String()
}
