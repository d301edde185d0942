package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock 解析 "HH:MM" 或 "HH:MM:SS"
func ParseClock(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid time %q", s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		if p == "" || len(p) > 2 || strings.Trim(p, "0123456789") != "" {
			return 0, 0, 0, fmt.Errorf("invalid time %q", s)
		}
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid time %q", s)
		}
		values[i] = n
	}

	hour, minute, second = values[0], values[1], values[2]
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, second, nil
}

// NormalizeClock 统一写入格式为 HH:MM:SS
func NormalizeClock(s string) (string, error) {
	h, m, sec, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec), nil
}
