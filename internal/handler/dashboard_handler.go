package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unipanel/exam-planner-api/internal/service"
	"github.com/unipanel/exam-planner-api/pkg/response"
)

// DashboardHandler serves aggregate counts for the admin landing page.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Returns counts of faculties, departments, courses, classrooms and exam schedules
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
