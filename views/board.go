package views

import (
	"TodoGo/models"
	"time"
)

// Card 渲染一个任务所需的数据
type Card struct {
	Task        models.TaskView `json:"task"`
	DateReached bool            `json:"dateReached"`
	TimeDisplay string          `json:"timeDisplay,omitempty"`
	Steps       *Progress       `json:"steps,omitempty"`
}

// Progress 项目任务的子步骤完成情况
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Group 同一 due 分类下未排期、未完成的任务
type Group struct {
	Due   models.Due `json:"due"`
	Label string     `json:"label"`
	Cards []Card     `json:"cards"`
}

// Cell 网格中的一个格子, Card 为空表示空闲
type Cell struct {
	Slot Slot  `json:"slot"`
	Card *Card `json:"card,omitempty"`
}

type Counts struct {
	Unscheduled int `json:"unscheduled"`
	Scheduled   int `json:"scheduled"`
	Completed   int `json:"completed"`
}

type Board struct {
	Date   string  `json:"date"`
	Groups []Group `json:"groups"`
	Grid   []Cell  `json:"grid"`
	// Unslotted 有排期但时间不在网格范围内的任务
	Unslotted []Card `json:"unslotted"`
	// Overlaps 与后面的任务抢同一个格子而没有显示在网格里的任务
	Overlaps  []Card `json:"overlaps"`
	Completed []Card `json:"completed"`
	Counts    Counts `json:"counts"`
}

// Unscheduled 没有排期且未完成
func Unscheduled(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return !t.IsScheduled() && !t.Completed })
}

// Scheduled 有排期且未完成, 不论时间能否落在网格中
func Scheduled(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.IsScheduled() && !t.Completed })
}

// Completed 已完成, 与 due 和排期无关
func Completed(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Completed })
}

func filter(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TaskGroup 是 GroupUnscheduled 的一个分组
type TaskGroup struct {
	Due   models.Due
	Label string
	Tasks []models.Task
}

// GroupUnscheduled 按固定的分类顺序分组, 组内保持列表顺序.
// 未知的 due 排在最后, 各自成组.
func GroupUnscheduled(tasks []models.Task) []TaskGroup {
	groups := make([]TaskGroup, 0, len(models.DueCategories))
	position := make(map[models.Due]int, len(models.DueCategories))
	for _, c := range models.DueCategories {
		position[c.ID] = len(groups)
		groups = append(groups, TaskGroup{Due: c.ID, Label: c.Label, Tasks: []models.Task{}})
	}

	for _, t := range Unscheduled(tasks) {
		i, ok := position[t.Due]
		if !ok {
			i = len(groups)
			position[t.Due] = i
			groups = append(groups, TaskGroup{Due: t.Due, Label: string(t.Due), Tasks: []models.Task{}})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// IsDateReached exact 任务的日期是否已到(按日历日比较)
func IsDateReached(t models.Task, today time.Time) bool {
	if t.Due != models.DueExact || t.ExactDate == nil {
		return false
	}
	return t.ExactDateRaw() <= today.Format(models.DateLayout)
}

// StepProgress 非项目任务返回 ok=false
func StepProgress(t models.Task) (completed, total int, ok bool) {
	if !t.IsProject() {
		return 0, 0, false
	}
	return t.CompletedSteps(), len(t.SubSteps), true
}

// NewCard 计算单个任务的展示数据
func NewCard(t models.Task, today time.Time) Card {
	card := Card{
		Task:        models.NewTaskView(t),
		DateReached: IsDateReached(t, today),
	}
	if t.IsScheduled() {
		card.TimeDisplay = FormatTime(*t.ScheduledTime)
	}
	if done, total, ok := StepProgress(t); ok {
		card.Steps = &Progress{Completed: done, Total: total}
	}
	return card
}

// Placement 是 PlaceOnGrid 的结果, 以格子下标为键
type Placement struct {
	BySlot    map[int]models.Task
	Unslotted []models.Task
	Overlaps  []models.Task
}

// PlaceOnGrid 把已排期任务放进格子. 同一格子有多个任务时, 列表中靠后的任务占用格子,
// 被挤掉的任务进入 Overlaps.
func PlaceOnGrid(scheduled []models.Task) Placement {
	p := Placement{
		BySlot:    make(map[int]models.Task),
		Unslotted: []models.Task{},
		Overlaps:  []models.Task{},
	}
	for _, t := range scheduled {
		if !t.IsScheduled() {
			continue
		}
		i := SlotIndex(*t.ScheduledTime)
		if i < 0 {
			p.Unslotted = append(p.Unslotted, t)
			continue
		}
		if prev, taken := p.BySlot[i]; taken {
			p.Overlaps = append(p.Overlaps, prev)
		}
		p.BySlot[i] = t
	}
	return p
}

// Derive 计算整个日视图
func Derive(tasks []models.Task, today time.Time) Board {
	board := Board{
		Date:      today.Format(models.DateLayout),
		Groups:    []Group{},
		Grid:      make([]Cell, len(TimeSlots)),
		Unslotted: []Card{},
		Overlaps:  []Card{},
		Completed: []Card{},
	}

	for _, g := range GroupUnscheduled(tasks) {
		group := Group{Due: g.Due, Label: g.Label, Cards: make([]Card, 0, len(g.Tasks))}
		for _, t := range g.Tasks {
			group.Cards = append(group.Cards, NewCard(t, today))
		}
		board.Counts.Unscheduled += len(g.Tasks)
		board.Groups = append(board.Groups, group)
	}

	scheduled := Scheduled(tasks)
	board.Counts.Scheduled = len(scheduled)
	placement := PlaceOnGrid(scheduled)
	for i, slot := range TimeSlots {
		board.Grid[i] = Cell{Slot: slot}
		if t, ok := placement.BySlot[i]; ok {
			card := NewCard(t, today)
			board.Grid[i].Card = &card
		}
	}
	for _, t := range placement.Unslotted {
		board.Unslotted = append(board.Unslotted, NewCard(t, today))
	}
	for _, t := range placement.Overlaps {
		board.Overlaps = append(board.Overlaps, NewCard(t, today))
	}

	for _, t := range Completed(tasks) {
		board.Completed = append(board.Completed, NewCard(t, today))
	}
	board.Counts.Completed = len(board.Completed)
	return board
}
