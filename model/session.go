package model

import "time"

type Session struct {
	SessionID      string    `bson:"session_id" json:"session_id"`
	AdminID        string    `bson:"admin_id" json:"admin_id"`
	DisplayName    string    `bson:"display_name" json:"display_name"`
	DeviceInfo     string    `bson:"device_info" json:"device_info"`
	IPAddress      string    `bson:"ip_address" json:"ip_address"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at"`
	LastActivityAt time.Time `bson:"last_activity_at" json:"last_activity_at"`
	Revoked        bool      `bson:"revoked" json:"revoked"`
}
