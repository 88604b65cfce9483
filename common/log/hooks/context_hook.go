package hooks

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextHook struct {
}

// NewContextHook returns a logrus hook that annotates every entry with the
// file:line of the logging call site, trimmed to a module-relative path.
func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(4, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "sirupsen/logrus") &&
			!strings.Contains(frame.File, "common/log/hooks") {
			parts := strings.Split(frame.File, "alascan/")
			entry.Data["file:line"] = fmt.Sprintf("%s:%d", parts[len(parts)-1], frame.Line)
			break
		}
		if !more {
			break
		}
	}
	return nil
}
