package model

import "time"

type CertificateStatus string

const (
	CertificateIssued  CertificateStatus = "issued"
	CertificatePending CertificateStatus = "pending"
	CertificateExpired CertificateStatus = "expired"
	CertificateRevoked CertificateStatus = "revoked"
)

type Certificate struct {
	UUID             string             `bson:"uuid" json:"uuid"`
	Student          string             `bson:"student" json:"student"`
	StudentEmail     string             `bson:"student_email,omitempty" json:"student_email,omitempty"`
	Course           string             `bson:"course" json:"course"`
	Institute        string             `bson:"institute" json:"institute"`
	Date             string             `bson:"date" json:"date"` // issue date as supplied by the admin
	Grade            string             `bson:"grade,omitempty" json:"grade,omitempty"`
	Instructor       string             `bson:"instructor,omitempty" json:"instructor,omitempty"`
	Status           CertificateStatus  `bson:"status" json:"status"`
	GeneratedByAdmin bool               `bson:"generated_by_admin" json:"generated_by_admin"`
	ValidationLog    []ValidationRecord `bson:"validation_log,omitempty" json:"validation_log,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidationRecord is appended every time the public validation endpoint
// resolves this certificate.
type ValidationRecord struct {
	ValidatedAt time.Time `bson:"validated_at" json:"validated_at"`
	IPAddress   string    `bson:"ip_address" json:"ip_address"`
	ClientAgent string    `bson:"client_agent" json:"client_agent"`
}
