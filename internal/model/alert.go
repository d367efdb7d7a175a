package model

import "time"

// AlertType 提醒类型
type AlertType string

const (
	AlertOverdue  AlertType = "overdue"
	AlertReminder AlertType = "reminder"
	AlertMessage  AlertType = "message"
	AlertApproval AlertType = "approval"
)

// Priority 提醒优先级
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Alert 提醒表 — 对应 alerts（只读展示）
type Alert struct {
	AlertID     string    `gorm:"column:alert_id;type:varchar(40);primaryKey" json:"id"`
	Type        AlertType `gorm:"type:varchar(20);not null"                   json:"type"`
	Title       string    `gorm:"type:varchar(200);not null"                  json:"title"`
	Description string    `gorm:"type:text"                                   json:"description"`
	Timestamp   time.Time `gorm:"column:raised_at;not null"                   json:"timestamp"`
	Priority    Priority  `gorm:"type:varchar(10);not null"                   json:"priority"`
}

// TableName 指定表名
func (Alert) TableName() string { return "alerts" }
