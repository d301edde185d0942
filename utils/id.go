package utils

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.New().String()
}

// ParseID 解析路径中的数字 ID
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
