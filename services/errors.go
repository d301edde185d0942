package services

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubstepNotFound = errors.New("substep not found")
)

// IsNotFound 判断是否为目标不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrSubstepNotFound)
}
