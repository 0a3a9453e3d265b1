package model

import "time"

type Admin struct {
	AdminID            string    `bson:"admin_id" json:"admin_id"`
	Username           string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email              string    `bson:"email" json:"email" validate:"required,email"`
	Password           string    `bson:"password" json:"-" validate:"required,min=6"` // argon2id hash
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	LastPasswordChange time.Time `bson:"last_password_change,omitempty" json:"last_password_change,omitempty"`
	TwoFactorEnabled   bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	TwoFactorSecret    string    `bson:"two_factor_secret,omitempty" json:"-"`
	RecoveryCodes      []string  `bson:"recovery_codes,omitempty" json:"-"`
}
