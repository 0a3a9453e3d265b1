package model

import "time"

type CourseStatus string

const (
	CoursePending   CourseStatus = "pending"
	CourseOngoing   CourseStatus = "ongoing"
	CourseCompleted CourseStatus = "completed"
	CourseDropped   CourseStatus = "dropped"
)

// Course is an enrollment record tying one student to one course of study.
type Course struct {
	CourseID        string       `bson:"course_id" json:"course_id"`
	StudentID       string       `bson:"student_id" json:"student_id"`
	StudentEmail    string       `bson:"student_email" json:"student_email"`
	CourseName      string       `bson:"course_name" json:"course_name" validate:"required"`
	CourseCode      string       `bson:"course_code,omitempty" json:"course_code,omitempty"`
	Institute       string       `bson:"institute,omitempty" json:"institute,omitempty"`
	Status          CourseStatus `bson:"status" json:"status"`
	Progress        int          `bson:"progress" json:"progress"` // 0-100
	Grade           string       `bson:"grade,omitempty" json:"grade,omitempty"`
	CertificateUUID string       `bson:"certificate_uuid,omitempty" json:"certificate_uuid,omitempty"`
	EnrolledAt      time.Time    `bson:"enrolled_at" json:"enrolled_at"`
	CompletedAt     time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
