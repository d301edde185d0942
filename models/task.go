package models

import (
	"time"
)

const (
	// DateLayout 是 exactDate 的存储与比较格式
	DateLayout = "2006-01-02"
	// DateDisplayLayout 用于列表展示, 例如 "Tue, Oct 20"
	DateDisplayLayout = "Mon, Jan 02"
)

// Due 任务的截止分类
type Due string

const (
	DueToday    Due = "today"
	DueTomorrow Due = "tomorrow"
	DueExact    Due = "exact"
	DueLater    Due = "later"
	DueProject  Due = "project"
)

type DueCategory struct {
	ID    Due    `json:"id"`
	Label string `json:"label"`
}

// DueCategories 固定的分组顺序
var DueCategories = []DueCategory{
	{ID: DueToday, Label: "Today"},
	{ID: DueTomorrow, Label: "Tomorrow"},
	{ID: DueExact, Label: "Exact Date"},
	{ID: DueLater, Label: "For Later"},
	{ID: DueProject, Label: "Projects"},
}

func (d Due) Valid() bool {
	for _, c := range DueCategories {
		if c.ID == d {
			return true
		}
	}
	return false
}

// Task 任务模型
type Task struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Text          string     `gorm:"type:text;not null" json:"text"`
	Due           Due        `gorm:"type:varchar(16);not null" json:"due"`
	ExactDate     *time.Time `gorm:"type:date" json:"exactDate"`
	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
	ScheduledTime *string    `gorm:"type:varchar(8)" json:"scheduledTime"` // HH:MM:SS
	SubSteps      []Substep  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subSteps"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t Task) IsProject() bool {
	return t.Due == DueProject
}

func (t Task) IsScheduled() bool {
	return t.ScheduledTime != nil && *t.ScheduledTime != ""
}

// ExactDateRaw 返回 YYYY-MM-DD, 没有日期时返回空串
func (t Task) ExactDateRaw() string {
	if t.ExactDate == nil {
		return ""
	}
	return t.ExactDate.Format(DateLayout)
}

// CompletedSteps 统计已完成的子步骤
func (t Task) CompletedSteps() int {
	n := 0
	for _, s := range t.SubSteps {
		if s.Completed {
			n++
		}
	}
	return n
}
