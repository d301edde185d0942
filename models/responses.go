package models

import "time"

// TaskCommon 所有任务共有的对外字段
type TaskCommon struct {
	ID               uint      `json:"id"`
	Text             string    `json:"text"`
	Due              Due       `json:"due"`
	ExactDateDisplay *string   `json:"exactDateDisplay"`
	ExactDateRaw     *string   `json:"exactDateRaw"`
	Completed        bool      `json:"completed"`
	CreatedAt        time.Time `json:"createdAt"`
	ScheduledTime    *string   `json:"scheduledTime"`
}

// TaskView 对外的任务表示: ProjectTask 或 SimpleTask
type TaskView interface {
	Common() TaskCommon
	isTaskView()
}

// SimpleTask 非项目任务, 序列化时没有 subSteps 字段
type SimpleTask struct {
	TaskCommon
}

// ProjectTask 项目任务, subSteps 总是存在, 没有子步骤时为 []
type ProjectTask struct {
	TaskCommon
	SubSteps []SubstepResponse `json:"subSteps"`
}

func (t SimpleTask) Common() TaskCommon  { return t.TaskCommon }
func (t ProjectTask) Common() TaskCommon { return t.TaskCommon }
func (SimpleTask) isTaskView()           {}
func (ProjectTask) isTaskView()          {}

// SubstepResponse 子步骤响应结构体
type SubstepResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func NewSubstepResponse(s Substep) SubstepResponse {
	return SubstepResponse{ID: s.ID, Text: s.Text, Completed: s.Completed}
}

// NewTaskView 按 due 选择对外表示
func NewTaskView(t Task) TaskView {
	common := TaskCommon{
		ID:            t.ID,
		Text:          t.Text,
		Due:           t.Due,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
		ScheduledTime: t.ScheduledTime,
	}
	if t.ExactDate != nil {
		display := t.ExactDate.Format(DateDisplayLayout)
		raw := t.ExactDate.Format(DateLayout)
		common.ExactDateDisplay = &display
		common.ExactDateRaw = &raw
	}

	if !t.IsProject() {
		return SimpleTask{TaskCommon: common}
	}

	steps := make([]SubstepResponse, 0, len(t.SubSteps))
	for _, s := range t.SubSteps {
		steps = append(steps, NewSubstepResponse(s))
	}
	return ProjectTask{TaskCommon: common, SubSteps: steps}
}

func NewTaskViews(tasks []Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t))
	}
	return views
}

// CompletionResponse PATCH completed 的回显
type CompletionResponse struct {
	ID        uint `json:"id"`
	Completed bool `json:"completed"`
}

// ScheduleResponse PATCH scheduledTime 的回显
type ScheduleResponse struct {
	ID            uint    `json:"id"`
	ScheduledTime *string `json:"scheduledTime"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
