package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unipanel/exam-planner-api/internal/service"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
	"github.com/unipanel/exam-planner-api/pkg/response"
)

// ExamScheduleHandler handles exam schedule endpoints.
type ExamScheduleHandler struct {
	service *service.ExamScheduleService
	exports *service.ExportService
}

// NewExamScheduleHandler constructs an exam schedule handler.
func NewExamScheduleHandler(svc *service.ExamScheduleService, exports *service.ExportService) *ExamScheduleHandler {
	return &ExamScheduleHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List exam schedules
// @Description Returns all schedules newest first with faculty name and course count
// @Tags ExamSchedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-schedules [get]
func (h *ExamScheduleHandler) List(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// Get godoc
// @Summary Get exam schedule by id
// @Description Returns the schedule with its course exams and classrooms
// @Tags ExamSchedules
// @Produce json
// @Param id path string true "Exam schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exam-schedules/{id} [get]
func (h *ExamScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Create godoc
// @Summary Create exam schedule
// @Description Creates the schedule header, course exams and classroom links atomically
// @Tags ExamSchedules
// @Accept json
// @Produce json
// @Param payload body service.CreateExamScheduleRequest true "Exam schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-schedules [post]
func (h *ExamScheduleHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateExamScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Export godoc
// @Summary Export exam schedule
// @Description Downloads the schedule's course table as PDF or CSV
// @Tags ExamSchedules
// @Produce application/pdf
// @Produce text/csv
// @Param id path string true "Exam schedule ID"
// @Param format query string false "Export format (pdf or csv)" default(pdf)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exam-schedules/{id}/export [get]
func (h *ExamScheduleHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatPDF)
	result, err := h.exports.ExportSchedule(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
