package sim

import (
	"log"
)

// A LogHook is a hook that writes what it observes to a logger.
type LogHook interface {
	Hook
}

// LogHookBase provides the logger of a LogHook.
type LogHookBase struct {
	*log.Logger
}

// NewLogHookBase creates a LogHookBase. A nil logger uses the standard
// logger.
func NewLogHookBase(logger *log.Logger) LogHookBase {
	if logger == nil {
		logger = log.Default()
	}

	return LogHookBase{Logger: logger}
}
