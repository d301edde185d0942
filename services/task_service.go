package services

import (
	"TodoGo/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TaskService 任务与子步骤的存储访问. 每个操作只对数据库发一次查询
type TaskService struct {
	db    *gorm.DB
	cache TaskCache
}

func NewTaskService(db *gorm.DB, cache TaskCache) *TaskService {
	if cache == nil {
		cache = NopTaskCache{}
	}
	return &TaskService{db: db, cache: cache}
}

// taskRow 是 tasks LEFT JOIN substeps 的一行
type taskRow struct {
	TaskID           uint       `gorm:"column:task_id"`
	Text             string     `gorm:"column:task_text"`
	Due              models.Due `gorm:"column:task_due"`
	ExactDate        *time.Time `gorm:"column:task_exact_date"`
	Completed        bool       `gorm:"column:task_completed"`
	CreatedAt        time.Time  `gorm:"column:task_created_at"`
	ScheduledTime    *string    `gorm:"column:task_scheduled_time"`
	SubstepID        *uint      `gorm:"column:substep_id"`
	SubstepText      *string    `gorm:"column:substep_text"`
	SubstepCompleted *bool      `gorm:"column:substep_completed"`
}

// List 返回所有任务及其子步骤, 按创建时间倒序
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, gen, ok := s.cache.Get(ctx)
	if ok {
		return tasks, nil
	}

	var rows []taskRow
	err := s.db.WithContext(ctx).
		Table("tasks AS t").
		Select(`t.id AS task_id, t.text AS task_text, t.due AS task_due, t.exact_date AS task_exact_date,
			t.completed AS task_completed, t.created_at AS task_created_at, t.scheduled_time AS task_scheduled_time,
			s.id AS substep_id, s.text AS substep_text, s.completed AS substep_completed`).
		Joins("LEFT JOIN substeps AS s ON s.task_id = t.id").
		Order("t.created_at DESC, t.id DESC, s.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks = aggregateRows(rows)
	s.cache.Set(ctx, gen, tasks)
	return tasks, nil
}

func aggregateRows(rows []taskRow) []models.Task {
	tasks := make([]models.Task, 0, len(rows))
	index := make(map[uint]int, len(rows))

	for _, r := range rows {
		i, seen := index[r.TaskID]
		if !seen {
			tasks = append(tasks, models.Task{
				ID:            r.TaskID,
				Text:          r.Text,
				Due:           r.Due,
				ExactDate:     r.ExactDate,
				Completed:     r.Completed,
				CreatedAt:     r.CreatedAt,
				ScheduledTime: r.ScheduledTime,
				SubSteps:      []models.Substep{},
			})
			i = len(tasks) - 1
			index[r.TaskID] = i
		}

		if r.SubstepID == nil {
			continue
		}
		step := models.Substep{ID: *r.SubstepID, TaskID: r.TaskID}
		if r.SubstepText != nil {
			step.Text = *r.SubstepText
		}
		if r.SubstepCompleted != nil {
			step.Completed = *r.SubstepCompleted
		}
		tasks[i].SubSteps = append(tasks[i].SubSteps, step)
	}
	return tasks
}

// Create 创建任务. 项目任务返回空的子步骤列表
func (s *TaskService) Create(ctx context.Context, input models.NewTask) (models.Task, error) {
	task := models.Task{
		Text:      input.Text,
		Due:       input.Due,
		ExactDate: input.ExactDate,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.cache.Invalidate(ctx)

	if task.IsProject() {
		task.SubSteps = []models.Substep{}
	}
	return task, nil
}

// SetCompleted 更新任务完成状态
func (s *TaskService) SetCompleted(ctx context.Context, id uint, completed bool) (models.CompletionResponse, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Update("completed", completed)
	if res.Error != nil {
		return models.CompletionResponse{}, fmt.Errorf("update task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.CompletionResponse{}, ErrTaskNotFound
	}
	s.cache.Invalidate(ctx)
	return models.CompletionResponse{ID: id, Completed: completed}, nil
}

// Schedule 设置或清除任务的排期时间, scheduledTime 为 nil 表示取消排期
func (s *TaskService) Schedule(ctx context.Context, id uint, scheduledTime *string) (models.ScheduleResponse, error) {
	var value any
	if scheduledTime != nil {
		value = *scheduledTime
	}
	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Update("scheduled_time", value)
	if res.Error != nil {
		return models.ScheduleResponse{}, fmt.Errorf("schedule task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ScheduleResponse{}, ErrTaskNotFound
	}
	s.cache.Invalidate(ctx)
	return models.ScheduleResponse{ID: id, ScheduledTime: scheduledTime}, nil
}

// Update 按请求类型分派到 Schedule 或 SetCompleted
func (s *TaskService) Update(ctx context.Context, id uint, update models.TaskUpdate) (any, error) {
	switch u := update.(type) {
	case models.ScheduleUpdate:
		return s.Schedule(ctx, id, u.ScheduledTime)
	case models.CompletionUpdate:
		return s.SetCompleted(ctx, id, u.Completed)
	default:
		return nil, fmt.Errorf("unsupported task update %T", update)
	}
}

// Delete 删除任务, 子步骤由外键级联删除
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	s.cache.Invalidate(ctx)
	return nil
}

// AddSubstep 给任务添加子步骤. 父任务不存在时由外键约束报错
func (s *TaskService) AddSubstep(ctx context.Context, taskID uint, text string) (models.Substep, error) {
	step := models.Substep{TaskID: taskID, Text: text}
	if err := s.db.WithContext(ctx).Create(&step).Error; err != nil {
		return models.Substep{}, fmt.Errorf("create substep for task %d: %w", taskID, err)
	}
	s.cache.Invalidate(ctx)
	return step, nil
}

func (s *TaskService) SetSubstepCompleted(ctx context.Context, id uint, completed bool) (models.CompletionResponse, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Substep{}).
		Where("id = ?", id).
		Update("completed", completed)
	if res.Error != nil {
		return models.CompletionResponse{}, fmt.Errorf("update substep %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.CompletionResponse{}, ErrSubstepNotFound
	}
	s.cache.Invalidate(ctx)
	return models.CompletionResponse{ID: id, Completed: completed}, nil
}

func (s *TaskService) DeleteSubstep(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Substep{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete substep %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSubstepNotFound
	}
	s.cache.Invalidate(ctx)
	return nil
}
