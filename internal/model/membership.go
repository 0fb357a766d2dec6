package model

import "time"

// Membership 社团成员关系，目前仅由 fixture 播种，运行时不产生新记录
type Membership struct {
	ClubID   string    `json:"clubId"`
	Email    string    `json:"email"`
	Role     string    `json:"role"` // Member / Leader / Advisor
	JoinedAt time.Time `json:"joinedAt"`
}
