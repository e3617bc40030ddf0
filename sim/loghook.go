package sim

import (
	"io"
	"log"
)

// LogHookBase provides the common logic for hooks that print what they see.
type LogHookBase struct {
	*log.Logger
}

// MakeLogHookBase creates a LogHookBase that prints to logger. A nil logger
// discards everything.
func MakeLogHookBase(logger *log.Logger) LogHookBase {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return LogHookBase{Logger: logger}
}
