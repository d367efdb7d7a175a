package dto

// ── 批量提交 ──

// ReadinessResponse GET /submit
type ReadinessResponse struct {
	Ready             []ProblemStatementResponse `json:"ready"`
	Count             int                        `json:"count"`
	Enabled           bool                       `json:"enabled"`
	DeadlineDate      string                     `json:"deadline_date"`
	DaysUntilDeadline int                        `json:"days_until_deadline"`
}

// AttachmentMeta 支撑文档元数据（仅校验，不存储）
type AttachmentMeta struct {
	FileName string `json:"file_name" binding:"required"`
	Size     int64  `json:"size"      binding:"min=0"`
}

// SubmitRequest POST /submit
type SubmitRequest struct {
	Attachments []AttachmentMeta `json:"attachments" binding:"omitempty,dive"`
}

// SubmitResponse 批量提交结果
type SubmitResponse struct {
	Submitted   []string `json:"submitted"`
	Count       int      `json:"count"`
	SubmittedAt string   `json:"submitted_at"`
}
