package model

import "time"

// ── 通用字段与常量 ──

// Unassigned draft 阶段尚未分配 SPOC 时的占位值
const Unassigned = "Unassigned"

// DateLayout 日历日期格式（createdAt / lastUpdated / 截止日期）
const DateLayout = "2006-01-02"

// TruncateDay 将时间截断为 loc 时区下当天零点
func TruncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
