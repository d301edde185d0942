package views

import (
	"TodoGo/models"
	"fmt"
)

const (
	FirstHour    = 5
	LastHour     = 23
	SlotMinutes  = 15
	SlotsPerHour = 60 / SlotMinutes
)

// Slot 日程网格中的一个 15 分钟格子, ID 即 "HH:MM"
type Slot struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Label  string `json:"label"`
	IsHour bool   `json:"isHour"`
}

// TimeSlots 05:00 到 23:45, 共 76 个
var TimeSlots = generateTimeSlots()

func generateTimeSlots() []Slot {
	slots := make([]Slot, 0, (LastHour-FirstHour+1)*SlotsPerHour)
	for hour := FirstHour; hour <= LastHour; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			id := fmt.Sprintf("%02d:%02d", hour, minute)
			slot := Slot{ID: id, Time: id, IsHour: minute == 0}
			if slot.IsHour {
				slot.Label = HourLabel(hour)
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

func SlotCount() int {
	return len(TimeSlots)
}

// SlotIndex 把 "HH:MM" 或 "HH:MM:SS" 映射到格子下标, 不在网格内时返回 -1
func SlotIndex(timeStr string) int {
	if timeStr == "" {
		return -1
	}
	hour, minute, _, err := models.ParseClock(timeStr)
	if err != nil {
		return -1
	}
	index := (hour-FirstHour)*SlotsPerHour + minute/SlotMinutes
	if index < 0 || index >= len(TimeSlots) {
		return -1
	}
	return index
}

// SlotFor 返回时间所在的格子
func SlotFor(timeStr string) (Slot, bool) {
	i := SlotIndex(timeStr)
	if i < 0 {
		return Slot{}, false
	}
	return TimeSlots[i], true
}

// HourLabel 整点标签, 例如 "9:00 AM", "12:00 PM"
func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00 %s", displayHour(hour), meridiem(hour))
}

// FormatTime 用于已排期任务的时间显示, 例如 "9:15 AM". 无法解析时原样返回
func FormatTime(timeStr string) string {
	if timeStr == "" {
		return ""
	}
	hour, minute, _, err := models.ParseClock(timeStr)
	if err != nil {
		return timeStr
	}
	return fmt.Sprintf("%d:%02d %s", displayHour(hour), minute, meridiem(hour))
}

func displayHour(hour int) int {
	switch {
	case hour > 12:
		return hour - 12
	case hour == 0:
		return 12
	default:
		return hour
	}
}

func meridiem(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}
