package model

import "time"

// Status 申请状态，闭合枚举
type Status string

const (
	StatusSubmitted   Status = "Submitted"
	StatusUnderReview Status = "Under Review"
	StatusAccepted    Status = "Accepted"
	StatusRejected    Status = "Rejected"
)

// AllStatuses 按推进顺序排列
var AllStatuses = []Status{StatusSubmitted, StatusUnderReview, StatusAccepted, StatusRejected}

// Next 演示用的状态推进：四个状态构成闭环，每个状态恰有一个后继
func (s Status) Next() Status {
	switch s {
	case StatusSubmitted:
		return StatusUnderReview
	case StatusUnderReview:
		return StatusAccepted
	case StatusAccepted:
		return StatusRejected
	case StatusRejected:
		return StatusSubmitted
	default:
		// 未知状态回到初始态
		return StatusSubmitted
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application 入社申请，提交时快照学生信息，不与名册联动
type Application struct {
	ID           string     `json:"id"`
	Reference    string     `json:"reference"`
	ClubID       string     `json:"clubId"`
	ClubName     string     `json:"clubName"`
	StudentID    string     `json:"studentId"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Grade        string     `json:"grade"`
	Motivation   string     `json:"motivation"`
	Experience   string     `json:"experience,omitempty"`
	Availability string     `json:"availability"`
	Status       Status     `json:"status"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}
