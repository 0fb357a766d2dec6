package model

// Student 学生名册记录（只读 fixture）
type Student struct {
	StudentID string `json:"studentId"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Grade     string `json:"grade"`
}
