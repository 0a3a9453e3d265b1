package model

import "time"

type Student struct {
	StudentID string    `bson:"student_id" json:"student_id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Password  string    `bson:"password" json:"-" validate:"required,min=6"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Institute string    `bson:"institute,omitempty" json:"institute,omitempty"`
	Status    string    `bson:"status" json:"status"` // active, inactive, banned
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
