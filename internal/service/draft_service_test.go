package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
)

type fakeScheduleCreator struct {
	calls    int
	gotActor string
	gotReq   CreateExamScheduleRequest
	err      error
}

func (f *fakeScheduleCreator) Create(ctx context.Context, actorID string, req CreateExamScheduleRequest) (*models.ExamSchedule, error) {
	f.calls++
	f.gotActor = actorID
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExamSchedule{ID: "sched-1", Title: req.Title, FacultyID: req.FacultyID}, nil
}

func awaitDraftLoaded(t *testing.T, svc *DraftService, userID string) models.DraftSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := svc.Snapshot(userID)
		if snap.CourseState == models.CatalogLoaded && snap.ClassroomState == models.CatalogLoaded {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("draft catalogs never finished loading")
	return models.DraftSnapshot{}
}

func TestDraftServiceIsolatesUsers(t *testing.T) {
	svc := NewDraftService(newTestCatalog(), &fakeScheduleCreator{}, time.Hour, nil)

	svc.SelectFaculty(context.Background(), "user-1", "fac-1")
	awaitDraftLoaded(t, svc, "user-1")

	other := svc.Snapshot("user-2")
	require.Empty(t, other.FacultyID)
	require.Equal(t, models.CatalogIdle, other.CourseState)
}

func TestDraftServiceSubmitResetsDraft(t *testing.T) {
	creator := &fakeScheduleCreator{}
	svc := NewDraftService(newTestCatalog(), creator, time.Hour, nil)

	svc.SelectFaculty(context.Background(), "user-1", "fac-1")
	awaitDraftLoaded(t, svc, "user-1")

	start := dateUTC(2026, 6, 1)
	end := dateUTC(2026, 6, 12)
	svc.SetHeader("user-1", DraftHeaderRequest{
		Title:                  "Spring Finals",
		StartDate:              &start,
		EndDate:                &end,
		AssistantCount:         3,
		MaxClassesPerAssistant: 2,
	})
	_, err := svc.ToggleClassroom("user-1", "room-1")
	require.NoError(t, err)

	schedule, err := svc.Submit(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "sched-1", schedule.ID)
	require.Equal(t, "user-1", creator.gotActor)
	require.Len(t, creator.gotReq.CourseExams, 2)
	require.Equal(t, []string{"room-1"}, creator.gotReq.SelectedClassroomIDs)

	snap := svc.Snapshot("user-1")
	require.Empty(t, snap.FacultyID)
	require.Empty(t, snap.CourseExams)
}

func TestDraftServiceSubmitFailureKeepsDraft(t *testing.T) {
	creator := &fakeScheduleCreator{err: context.DeadlineExceeded}
	svc := NewDraftService(newTestCatalog(), creator, time.Hour, nil)

	svc.SelectFaculty(context.Background(), "user-1", "fac-1")
	awaitDraftLoaded(t, svc, "user-1")
	_, err := svc.ToggleClassroom("user-1", "room-1")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "user-1")
	require.Error(t, err)

	snap := svc.Snapshot("user-1")
	require.Equal(t, "fac-1", snap.FacultyID)
	require.Equal(t, []string{"room-1"}, snap.SelectedClassroomIDs)
}

func TestDraftServiceSweepEvictsIdleDrafts(t *testing.T) {
	svc := NewDraftService(newTestCatalog(), &fakeScheduleCreator{}, time.Minute, nil)

	svc.SelectFaculty(context.Background(), "user-1", "fac-1")
	awaitDraftLoaded(t, svc, "user-1")

	removed := svc.Sweep(time.Now().Add(2 * time.Minute))
	require.Equal(t, 1, removed)

	snap := svc.Snapshot("user-1")
	require.Empty(t, snap.FacultyID)
}
