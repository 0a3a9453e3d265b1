package dto

type StudentRegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,password"`
	Phone     string `json:"phone"`
	Institute string `json:"institute"`
}

type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EnrollRequest struct {
	CourseName string `json:"course_name" binding:"required"`
	CourseCode string `json:"course_code"`
	Institute  string `json:"institute"`
}

type CourseProgressRequest struct {
	Progress int    `json:"progress" binding:"min=0,max=100"`
	Grade    string `json:"grade"`
}
