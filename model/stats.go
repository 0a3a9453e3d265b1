package model

import "time"

type OverviewStats struct {
	Certificates CertificateStats `json:"certificates"`
	Students     int64            `json:"students"`
	Institutes   int64            `json:"institutes"`
	Security     SecurityStats    `json:"security"`
}

type CertificateStats struct {
	Total       int64            `json:"total"`
	ByCourse    map[string]int64 `json:"by_course"`
	ByInstitute map[string]int64 `json:"by_institute"`
	Monthly     []MonthlyCount   `json:"monthly"`
}

type MonthlyCount struct {
	Month string `bson:"_id" json:"month"` // YYYY-MM
	Count int64  `bson:"count" json:"count"`
}

type SecurityStats struct {
	ActiveSessions int                 `json:"active_sessions"`
	FailedLogins   int64               `json:"failed_logins"`
	RecentFailures []FailedLoginRecord `json:"recent_failures"`
}

type FailedLoginRecord struct {
	At        time.Time `json:"at"`
	Username  string    `json:"username"`
	IPAddress string    `json:"ip_address"`
}

type SystemStats struct {
	CPUUsagePercent float64   `json:"cpu_usage_percent"`
	MemoryUsedMB    uint64    `json:"memory_used_mb"`
	MemoryTotalMB   uint64    `json:"memory_total_mb"`
	CheckedAt       time.Time `json:"checked_at"`
}
