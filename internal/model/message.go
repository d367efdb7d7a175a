package model

import "time"

// SenderRole 消息发送方角色
type SenderRole string

const (
	SenderInstitutionAdmin SenderRole = "institution_admin"
	SenderDepartmentAdmin  SenderRole = "department_admin"
)

// Message 消息表 — 对应 messages
// PSID 为弱引用：问题陈述可以没有消息，消息不随问题陈述级联
type Message struct {
	MessageID  string     `gorm:"column:message_id;type:varchar(40);primaryKey" json:"id"`
	PSID       string     `gorm:"column:ps_id;type:varchar(20);not null;index"  json:"ps_id"`
	PSTitle    string     `gorm:"column:ps_title;type:varchar(200)"             json:"ps_title"`
	Sender     string     `gorm:"type:varchar(120);not null"                    json:"sender"`
	SenderRole SenderRole `gorm:"type:varchar(30);not null"                     json:"sender_role"`
	Content    string     `gorm:"type:text;not null"                            json:"content"`
	Timestamp  time.Time  `gorm:"column:sent_at;not null"                       json:"timestamp"`
	IsRead     bool       `gorm:"not null;default:false"                        json:"is_read"`
}

// TableName 指定表名
func (Message) TableName() string { return "messages" }
