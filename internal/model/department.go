package model

// Department 部门表 — 对应 departments
type Department struct {
	DepartmentID string `gorm:"type:varchar(40);primaryKey"  json:"department_id"`
	Name         string `gorm:"type:varchar(120);not null"   json:"name"`
	FacultyID    string `gorm:"type:varchar(40);not null"    json:"faculty_id"`
	Institution  string `gorm:"type:varchar(200);not null"   json:"institution"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
