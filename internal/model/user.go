package model

// 角色
const (
	RoleDepartmentAdmin  = "department_admin"
	RoleInstitutionAdmin = "institution_admin"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:varchar(40);primaryKey"        json:"user_id"`
	Name         string `gorm:"type:varchar(120);not null"         json:"name"`
	Email        string `gorm:"type:varchar(255);not null;unique"  json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"         json:"-"`
	Role         string `gorm:"type:varchar(30);not null"          json:"role"`
	DepartmentID string `gorm:"type:varchar(40);not null;default:''"  json:"department_id"`
	Phone        string `gorm:"type:varchar(30);not null;default:''" json:"phone,omitempty"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
