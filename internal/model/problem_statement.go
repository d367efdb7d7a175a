package model

import (
	"strings"
	"time"
)

// ProblemStatement 问题陈述表 — 对应 problem_statements
type ProblemStatement struct {
	PSID         string    `gorm:"column:ps_id;type:varchar(20);primaryKey"          json:"id"`
	Title        string    `gorm:"type:varchar(200);not null"                        json:"title"`
	Category     string    `gorm:"type:varchar(80);not null"                         json:"category"`
	Theme        string    `gorm:"type:varchar(120);not null;default:''"             json:"theme"`
	Description  string    `gorm:"type:text;not null;default:''"                     json:"description"`
	FacultyOwner string    `gorm:"type:varchar(120);not null;default:''"             json:"faculty_owner"`
	AssignedSPOC string    `gorm:"column:assigned_spoc;type:varchar(120);not null"   json:"assigned_spoc"`
	Status       Status    `gorm:"type:varchar(20);not null;default:'draft'"         json:"status"`
	CreatedAt    time.Time `gorm:"type:date;not null"                                json:"created_at"`
	LastUpdated  time.Time `gorm:"column:last_updated;type:date;not null"            json:"last_updated"`
}

// TableName 指定表名
func (ProblemStatement) TableName() string { return "problem_statements" }

// MissingSubmitFields 返回提交到机构前仍为空的必填字段（draft→submitted 的守卫）
func (p *ProblemStatement) MissingSubmitFields() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("title", p.Title)
	check("category", p.Category)
	check("theme", p.Theme)
	check("description", p.Description)
	check("faculty_owner", p.FacultyOwner)
	return missing
}

// StatusTransition 一次状态比较交换：仅当当前状态仍为 From 时迁移到 To
type StatusTransition struct {
	PSID         string
	From         Status
	To           Status
	AssignedSPOC string    // 非空时一并写入
	On           time.Time // 写入 last_updated
}
