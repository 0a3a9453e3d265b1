package dto

type CreateCertificateRequest struct {
	UUID         string `json:"uuid"`
	Student      string `json:"student" binding:"required"`
	StudentEmail string `json:"student_email"`
	Course       string `json:"course" binding:"required"`
	Institute    string `json:"institute" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Grade        string `json:"grade"`
	Instructor   string `json:"instructor"`
}

type CertificateListQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	Institute string `form:"institute"`
	Course    string `form:"course"`
	Student   string `form:"student"`
}
