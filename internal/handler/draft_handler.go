package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unipanel/exam-planner-api/internal/service"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
	"github.com/unipanel/exam-planner-api/pkg/response"
)

// DraftHandler exposes the per-user exam schedule draft workflow.
type DraftHandler struct {
	service *service.DraftService
}

// NewDraftHandler constructs a draft handler.
func NewDraftHandler(svc *service.DraftService) *DraftHandler {
	return &DraftHandler{service: svc}
}

// Get godoc
// @Summary Get current draft
// @Description Returns the caller's in-progress exam schedule draft
// @Tags Drafts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-schedules/draft [get]
func (h *DraftHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot(claims.UserID), nil)
}

// SelectFaculty godoc
// @Summary Select draft faculty
// @Description Switches the draft to a faculty and starts loading its catalogs
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body object{faculty_id=string} true "Faculty selection"
// @Success 200 {object} response.Envelope
// @Router /exam-schedules/draft/faculty [put]
func (h *DraftHandler) SelectFaculty(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		FacultyID string `json:"faculty_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	snapshot := h.service.SelectFaculty(c.Request.Context(), claims.UserID, payload.FacultyID)
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// SetHeader godoc
// @Summary Update draft header
// @Description Replaces the draft's title, dates and assistant settings
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body service.DraftHeaderRequest true "Header payload"
// @Success 200 {object} response.Envelope
// @Router /exam-schedules/draft/header [put]
func (h *DraftHandler) SetHeader(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.DraftHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	response.JSON(c, http.StatusOK, h.service.SetHeader(claims.UserID, req), nil)
}

// SetCourseExamField godoc
// @Summary Update one course exam field
// @Description Sets exam_duration or student_count for one course entry of the draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param payload body object{field=string,value=int} true "Field update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-schedules/draft/course-exams/{courseId} [patch]
func (h *DraftHandler) SetCourseExamField(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Field string `json:"field" binding:"required"`
		Value int    `json:"value"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	snapshot, err := h.service.SetCourseExamField(claims.UserID, c.Param("courseId"), payload.Field, payload.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// ToggleClassroom godoc
// @Summary Toggle classroom selection
// @Description Adds or removes a classroom from the draft selection
// @Tags Drafts
// @Produce json
// @Param classroomId path string true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-schedules/draft/classrooms/{classroomId}/toggle [post]
func (h *DraftHandler) ToggleClassroom(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	snapshot, err := h.service.ToggleClassroom(claims.UserID, c.Param("classroomId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// Submit godoc
// @Summary Submit draft
// @Description Validates the draft and creates the exam schedule atomically
// @Tags Drafts
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-schedules/draft/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	schedule, err := h.service.Submit(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Reset godoc
// @Summary Discard draft
// @Description Drops the caller's draft state
// @Tags Drafts
// @Produce json
// @Success 204
// @Router /exam-schedules/draft [delete]
func (h *DraftHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	h.service.Reset(claims.UserID)
	response.NoContent(c)
}
