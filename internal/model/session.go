package model

import "time"

// Session 当前登录会话（进程内单槽位，同一时刻至多一个）
type Session struct {
	JTI          string    `json:"-"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	DepartmentID string    `json:"department_id"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired 会话是否已过期
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
