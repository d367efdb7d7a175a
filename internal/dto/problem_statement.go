package dto

// ── 问题陈述模块 DTO ──

// ListProblemStatementsRequest 列表查询参数
type ListProblemStatementsRequest struct {
	Q string `form:"q"`
}

// CreateProblemStatementRequest 新建问题陈述（保存为 draft）
type CreateProblemStatementRequest struct {
	Title        string `json:"title"         binding:"max=200"`
	Category     string `json:"category"      binding:"max=80"`
	Theme        string `json:"theme"         binding:"max=120"`
	FacultyOwner string `json:"faculty_owner" binding:"max=120"`
	Description  string `json:"description"`
}

// UpdateProblemStatementRequest 编辑问题陈述，nil 字段保持不变
type UpdateProblemStatementRequest struct {
	Title        *string `json:"title"         binding:"omitempty,max=200"`
	Category     *string `json:"category"      binding:"omitempty,max=80"`
	Theme        *string `json:"theme"         binding:"omitempty,max=120"`
	FacultyOwner *string `json:"faculty_owner" binding:"omitempty,max=120"`
	Description  *string `json:"description"`
}

// ProblemStatementResponse 问题陈述视图
type ProblemStatementResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Theme        string `json:"theme"`
	Description  string `json:"description"`
	FacultyOwner string `json:"faculty_owner"`
	AssignedSPOC string `json:"assigned_spoc"`
	Status       string `json:"status"`
	StatusLabel  string `json:"status_label"`
	StatusTone   string `json:"status_tone"`
	CreatedAt    string `json:"created_at"`
	LastUpdated  string `json:"last_updated"`
	Editable     bool   `json:"editable"`
	Deletable    bool   `json:"deletable"`
}

// ProblemStatementListResponse 列表响应（不分页）
type ProblemStatementListResponse struct {
	Items []ProblemStatementResponse `json:"items"`
	Total int                        `json:"total"`
	Query string                     `json:"query"`
}
