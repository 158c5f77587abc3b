package utils

import (
	"fmt"

	"go.uber.org/zap"
)

// CheckWarn logs a warning and returns true if err is not nil
func CheckWarn(logger *zap.Logger, err error, context string) bool {
	if err != nil {
		logger.Warn(context, zap.Error(err))
		return true
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
