package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation 请求参数不合法, 映射为 400
var ErrValidation = errors.New("invalid request")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// CreateTaskRequest 创建任务请求结构体
type CreateTaskRequest struct {
	Text      string  `json:"text" binding:"required"`
	Due       Due     `json:"due" binding:"required"`
	ExactDate *string `json:"exactDate"`
}

// NewTask 通过校验后的新任务
type NewTask struct {
	Text      string
	Due       Due
	ExactDate *time.Time
}

// Validate 校验请求并转换为 NewTask. exactDate 只在 due=exact 时保留
func (r CreateTaskRequest) Validate() (NewTask, error) {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return NewTask{}, invalid("text must not be empty")
	}
	if !r.Due.Valid() {
		return NewTask{}, invalid("unknown due %q", r.Due)
	}

	task := NewTask{Text: text, Due: r.Due}
	if r.Due != DueExact {
		return task, nil
	}

	if r.ExactDate == nil || strings.TrimSpace(*r.ExactDate) == "" {
		return NewTask{}, invalid("exactDate is required when due is exact")
	}
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(*r.ExactDate), time.Local)
	if err != nil {
		return NewTask{}, invalid("exactDate must be YYYY-MM-DD")
	}
	task.ExactDate = &date
	return task, nil
}

// CreateSubstepRequest 创建子步骤请求结构体
type CreateSubstepRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r CreateSubstepRequest) Validate() (string, error) {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return "", invalid("text must not be empty")
	}
	return text, nil
}

// UpdateSubstepRequest 切换子步骤完成状态
type UpdateSubstepRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// TaskUpdate 是 PATCH /tasks/{id} 的请求体, 只能是 CompletionUpdate 或 ScheduleUpdate
type TaskUpdate interface {
	isTaskUpdate()
}

type CompletionUpdate struct {
	Completed bool
}

// ScheduleUpdate 中 ScheduledTime 为 nil 表示取消排期
type ScheduleUpdate struct {
	ScheduledTime *string
}

func (CompletionUpdate) isTaskUpdate() {}
func (ScheduleUpdate) isTaskUpdate()   {}

// ParseTaskUpdate 解析任务更新请求. 只要出现 scheduledTime 字段(包括 null), 就忽略 completed
func ParseTaskUpdate(body []byte) (TaskUpdate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, invalid("body must be a JSON object")
	}

	if raw, ok := fields["scheduledTime"]; ok {
		if isNull(raw) {
			return ScheduleUpdate{}, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid("scheduledTime must be a string or null")
		}
		normalized, err := NormalizeClock(s)
		if err != nil {
			return nil, invalid("scheduledTime: %v", err)
		}
		return ScheduleUpdate{ScheduledTime: &normalized}, nil
	}

	raw, ok := fields["completed"]
	if !ok || isNull(raw) {
		return nil, invalid("completed or scheduledTime is required")
	}
	var completed bool
	if err := json.Unmarshal(raw, &completed); err != nil {
		return nil, invalid("completed must be a boolean")
	}
	return CompletionUpdate{Completed: completed}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
