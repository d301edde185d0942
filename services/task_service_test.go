package services

import (
	"TodoGo/config"
	"TodoGo/models"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database := config.NewDatabase(config.Config{
		Environment: "test",
		DBDriver:    "sqlite",
		DBPath:      filepath.Join(t.TempDir(), "todo.db"),
	})
	require.NoError(t, database.Migrate())
	t.Cleanup(func() { _ = database.Close() })

	db, err := database.Conn()
	require.NoError(t, err)
	return db
}

func newTestService(t *testing.T) (*TaskService, *gorm.DB) {
	db := newTestDB(t)
	return NewTaskService(db, nil), db
}

func mustCreate(t *testing.T, svc *TaskService, text string, due models.Due) models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), models.NewTask{Text: text, Due: due})
	require.NoError(t, err)
	return task
}

func TestTaskService_CreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rent := mustCreate(t, svc, "Pay rent", models.DueLater)
	assert.NotZero(t, rent.ID)
	assert.False(t, rent.Completed)
	assert.Nil(t, rent.SubSteps)
	assert.Nil(t, rent.ScheduledTime)

	project := mustCreate(t, svc, "Move house", models.DueProject)
	assert.Equal(t, []models.Substep{}, project.SubSteps)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// newest first
	assert.Equal(t, project.ID, tasks[0].ID)
	assert.Equal(t, rent.ID, tasks[1].ID)
	assert.Equal(t, "Pay rent", tasks[1].Text)
	assert.Equal(t, models.DueLater, tasks[1].Due)
	assert.Empty(t, tasks[1].SubSteps)
}

func TestTaskService_ExactDateRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	day, err := time.ParseInLocation(models.DateLayout, "2026-10-25", time.Local)
	require.NoError(t, err)
	created, err := svc.Create(ctx, models.NewTask{Text: "Dentist", Due: models.DueExact, ExactDate: &day})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-25", created.ExactDateRaw())

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2026-10-25", tasks[0].ExactDateRaw())
}

func TestTaskService_SubstepsAggregateInInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	project := mustCreate(t, svc, "Move house", models.DueProject)
	other := mustCreate(t, svc, "Garden", models.DueProject)

	first, err := svc.AddSubstep(ctx, project.ID, "Boxes")
	require.NoError(t, err)
	_, err = svc.AddSubstep(ctx, other.ID, "Seeds")
	require.NoError(t, err)
	second, err := svc.AddSubstep(ctx, project.ID, "Van")
	require.NoError(t, err)
	assert.Equal(t, "Van", second.Text)
	assert.False(t, second.Completed)

	res, err := svc.SetSubstepCompleted(ctx, first.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.CompletionResponse{ID: first.ID, Completed: true}, res)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	moved := tasks[1]
	require.Equal(t, project.ID, moved.ID)
	require.Len(t, moved.SubSteps, 2)
	assert.Equal(t, first.ID, moved.SubSteps[0].ID)
	assert.True(t, moved.SubSteps[0].Completed)
	assert.Equal(t, "Van", moved.SubSteps[1].Text)
	assert.Equal(t, 1, moved.CompletedSteps())
	assert.Len(t, tasks[0].SubSteps, 1)
}

func TestTaskService_SetCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "Pay rent", models.DueLater)

	res, err := svc.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.CompletionResponse{ID: task.ID, Completed: true}, res)

	// setting the same value again still finds the row
	_, err = svc.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, tasks[0].Completed)
}

func TestTaskService_ScheduleAndUnschedule(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "Standup", models.DueToday)

	at := "09:15:00"
	res, err := svc.Schedule(ctx, task.ID, &at)
	require.NoError(t, err)
	require.NotNil(t, res.ScheduledTime)
	assert.Equal(t, "09:15:00", *res.ScheduledTime)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, tasks[0].ScheduledTime)
	assert.Equal(t, "09:15:00", *tasks[0].ScheduledTime)

	res, err = svc.Schedule(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, res.ScheduledTime)

	tasks, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, tasks[0].ScheduledTime)
}

func TestTaskService_UpdateDispatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "Standup", models.DueToday)

	at := "10:30:00"
	out, err := svc.Update(ctx, task.ID, models.ScheduleUpdate{ScheduledTime: &at})
	require.NoError(t, err)
	assert.IsType(t, models.ScheduleResponse{}, out)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.False(t, tasks[0].Completed)

	out, err = svc.Update(ctx, task.ID, models.CompletionUpdate{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, models.CompletionResponse{ID: task.ID, Completed: true}, out)
}

func TestTaskService_DeleteCascadesSubsteps(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	project := mustCreate(t, svc, "Move house", models.DueProject)
	for _, text := range []string{"Boxes", "Van", "Keys"} {
		_, err := svc.AddSubstep(ctx, project.ID, text)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Substep{}).Where("task_id = ?", project.ID).Count(&count).Error)
	require.Equal(t, int64(3), count)

	require.NoError(t, svc.Delete(ctx, project.ID))

	require.NoError(t, db.Model(&models.Substep{}).Where("task_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "Keep me", models.DueToday)

	_, err := svc.SetCompleted(ctx, 999, true)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	at := "09:00:00"
	_, err = svc.Schedule(ctx, 999, &at)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrTaskNotFound)

	_, err = svc.SetSubstepCompleted(ctx, 999, true)
	assert.ErrorIs(t, err, ErrSubstepNotFound)
	assert.ErrorIs(t, svc.DeleteSubstep(ctx, 999), ErrSubstepNotFound)
	assert.True(t, IsNotFound(err))

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.False(t, tasks[0].Completed)
	assert.Nil(t, tasks[0].ScheduledTime)
}

func TestTaskService_DeleteSubstep(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	project := mustCreate(t, svc, "Move house", models.DueProject)

	step, err := svc.AddSubstep(ctx, project.ID, "Boxes")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSubstep(ctx, step.ID))
	assert.ErrorIs(t, svc.DeleteSubstep(ctx, step.ID), ErrSubstepNotFound)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks[0].SubSteps)
}

func TestTaskService_AddSubstepToMissingTaskIsStorageError(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddSubstep(context.Background(), 4242, "Orphan")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
