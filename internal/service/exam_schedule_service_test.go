package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type fakeScheduleRepo struct {
	createCalls    int
	gotSchedule    *models.ExamSchedule
	gotCourseExams []models.CourseExamSchedule
	gotClassrooms  []models.ExamScheduleClassroom
	createErr      error
	listResult     []models.ExamScheduleListItem
	findResult     *models.ExamScheduleDetail
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *models.ExamSchedule, courseExams []models.CourseExamSchedule, classroomLinks []models.ExamScheduleClassroom) error {
	f.createCalls++
	f.gotSchedule = schedule
	f.gotCourseExams = courseExams
	f.gotClassrooms = classroomLinks
	return f.createErr
}

func (f *fakeScheduleRepo) List(ctx context.Context) ([]models.ExamScheduleListItem, error) {
	return f.listResult, nil
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id string) (*models.ExamScheduleDetail, error) {
	return f.findResult, nil
}

type fakeScheduleAudit struct {
	logs []models.AuditLog
}

func (f *fakeScheduleAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func validScheduleRequest() CreateExamScheduleRequest {
	return CreateExamScheduleRequest{
		Title:                  "Spring Finals",
		FacultyID:              "fac-1",
		StartDate:              time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		AssistantCount:         3,
		MaxClassesPerAssistant: 2,
		CourseExams: []CourseExamInput{
			{CourseID: "course-1", ExamDuration: 90, StudentCount: 80},
			{CourseID: "course-2", ExamDuration: 60, StudentCount: 0},
		},
		SelectedClassroomIDs: []string{"room-1", "room-2"},
	}
}

func TestExamScheduleServiceCreate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	audit := &fakeScheduleAudit{}
	svc := NewExamScheduleService(repo, audit, nil, nil, nil)

	schedule, err := svc.Create(context.Background(), "user-1", validScheduleRequest())
	require.NoError(t, err)
	require.Equal(t, 1, repo.createCalls)
	require.Equal(t, "user-1", schedule.CreatedByID)
	require.Len(t, repo.gotCourseExams, 2)
	require.Len(t, repo.gotClassrooms, 2)
	require.Equal(t, "course-1", repo.gotCourseExams[0].CourseID)
	require.Equal(t, "room-1", repo.gotClassrooms[0].ClassroomID)
	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionScheduleCreate, audit.logs[0].Action)
}

func TestExamScheduleServiceCreateRequiresActor(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewExamScheduleService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), "", validScheduleRequest())
	require.Error(t, err)
	require.Equal(t, 0, repo.createCalls)
}

func TestExamScheduleServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateExamScheduleRequest)
		message string
	}{
		{
			name:   "missing title",
			mutate: func(r *CreateExamScheduleRequest) { r.Title = "" },
		},
		{
			name:   "missing faculty",
			mutate: func(r *CreateExamScheduleRequest) { r.FacultyID = "" },
		},
		{
			name:    "duration below minimum",
			mutate:  func(r *CreateExamScheduleRequest) { r.CourseExams[0].ExamDuration = 29 },
			message: "course exam details are invalid",
		},
		{
			name:    "negative student count",
			mutate:  func(r *CreateExamScheduleRequest) { r.CourseExams[1].StudentCount = -1 },
			message: "course exam details are invalid",
		},
		{
			name:    "no course exams",
			mutate:  func(r *CreateExamScheduleRequest) { r.CourseExams = nil },
			message: "course exam details are invalid",
		},
		{
			name:    "no classrooms",
			mutate:  func(r *CreateExamScheduleRequest) { r.SelectedClassroomIDs = nil },
			message: "at least one classroom must be selected",
		},
		{
			name:   "zero max classes per assistant",
			mutate: func(r *CreateExamScheduleRequest) { r.MaxClassesPerAssistant = 0 },
		},
		{
			name:    "end date equals start date",
			mutate:  func(r *CreateExamScheduleRequest) { r.EndDate = r.StartDate },
			message: "end date must be after start date",
		},
		{
			name:    "end date before start date",
			mutate:  func(r *CreateExamScheduleRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -1) },
			message: "end date must be after start date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeScheduleRepo{}
			svc := NewExamScheduleService(repo, nil, nil, nil, nil)

			req := validScheduleRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), "user-1", req)
			require.Error(t, err)
			require.Equal(t, 0, repo.createCalls)

			appErr := appErrors.FromError(err)
			require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
			if tc.message != "" {
				require.Equal(t, tc.message, appErr.Message)
			}
		})
	}
}

func TestExamScheduleServiceCreateValidationReportsAllViolations(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewExamScheduleService(repo, nil, nil, nil, nil)

	req := validScheduleRequest()
	req.CourseExams = nil
	req.SelectedClassroomIDs = nil

	_, err := svc.Create(context.Background(), "user-1", req)
	require.Error(t, err)
	require.Equal(t, 0, repo.createCalls)

	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Contains(t, appErr.Message, "course exam details are invalid")
	require.Contains(t, appErr.Message, "at least one classroom must be selected")
}

func TestExamScheduleServiceCreateAcceptsNextDayEnd(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewExamScheduleService(repo, nil, nil, nil, nil)

	req := validScheduleRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, 1)

	_, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)
	require.Equal(t, 1, repo.createCalls)
}

func TestExamScheduleServiceGetMissing(t *testing.T) {
	repo := &fakeScheduleRepo{findResult: nil}
	svc := NewExamScheduleService(repo, nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
