package dto

// ── 审核跟踪 ──

// ReviewMetrics 审核页指标
type ReviewMetrics struct {
	PendingReview     int    `json:"pending_review"`
	Approved          int    `json:"approved"`
	RevisionNeeded    int    `json:"revision_needed"`
	DeadlineDate      string `json:"deadline_date"`
	DaysUntilDeadline int    `json:"days_until_deadline"`
	Urgent            bool   `json:"urgent"`
}

// ReviewListResponse GET /reviews
type ReviewListResponse struct {
	Items   []ProblemStatementResponse `json:"items"`
	Metrics ReviewMetrics              `json:"metrics"`
	Alerts  []AlertResponse            `json:"alerts"`
}

// RequestRevisionRequest 机构退回修改
type RequestRevisionRequest struct {
	Feedback string `json:"feedback" binding:"max=4000"`
}
