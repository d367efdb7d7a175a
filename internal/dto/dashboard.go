package dto

// ── 仪表盘 ──

// DashboardMetrics 汇总指标
type DashboardMetrics struct {
	TotalPrepared          int    `json:"total_prepared"`
	SubmittedToInstitution int    `json:"submitted_to_institution"`
	PendingReview          int    `json:"pending_review"`
	Approved               int    `json:"approved"`
	RevisionNeeded         int    `json:"revision_needed"`
	DeadlineDate           string `json:"deadline_date"`
	DaysUntilDeadline      int    `json:"days_until_deadline"`
	Urgent                 bool   `json:"urgent"`
}

// StageResponse 提交周期阶段
type StageResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// AlertResponse 提醒
type AlertResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Priority    string `json:"priority"`
}

// DashboardResponse GET /dashboard
type DashboardResponse struct {
	Metrics DashboardMetrics           `json:"metrics"`
	Stages  []StageResponse            `json:"stages"`
	Recent  []ProblemStatementResponse `json:"recent"`
	Alerts  []AlertResponse            `json:"alerts"`
}
