package model

import "time"

type Institute struct {
	InstituteID string    `bson:"institute_id" json:"institute_id"`
	Name        string    `bson:"name" json:"name" validate:"required"`
	Email       string    `bson:"email" json:"email" validate:"required,email"`
	Contact     string    `bson:"contact" json:"contact"`
	Location    string    `bson:"location" json:"location"`
	Type        string    `bson:"type" json:"type"`     // college, university, school, training_center, online_platform
	Status      string    `bson:"status" json:"status"` // active, inactive, suspended
	Website     string    `bson:"website,omitempty" json:"website,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
