package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/response"
)

// DashboardHandler 仪表盘 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Get 指标、阶段、最近记录与提醒
// GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	result, err := h.dashboardSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
