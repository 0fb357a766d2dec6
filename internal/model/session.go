package model

// Session 当前登录学生的会话记录，按邮箱持久化
// 要么字段齐全，要么整条不存在，不落半截会话
type Session struct {
	StudentID       string `json:"studentId"`
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Grade           string `json:"grade,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}
