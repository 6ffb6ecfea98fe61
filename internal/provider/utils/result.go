package utils

import (
	"github.com/qdm12/allowlist-updater/internal/models"
)

type InfoWarnErrorer interface {
	Info(message string)
	Warn(message string)
	Error(message string)
}

// LogResult logs the result of a target at a level matching its status.
func LogResult(logger InfoWarnErrorer, targetKind string, result models.Result) {
	prefix := targetKind + " " + result.Target
	switch result.Status {
	case models.UPDATED:
		logger.Info(prefix + " updated")
	case models.UPTODATE:
		logger.Info(prefix + " is already up to date")
	case models.NOTFOUND:
		logger.Warn(prefix + " not found")
	default:
		message := prefix + ": " + string(result.Status)
		if result.Err != nil {
			message = prefix + ": " + result.Err.Error()
		}
		logger.Error(message)
	}
}
