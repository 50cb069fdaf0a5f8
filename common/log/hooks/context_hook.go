package hooks

import (
	"os"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// contextHook records the file:line of the logging call site.
type contextHook struct {
}

func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	entry.Data["file:line"] = callSite(string(debug.Stack()))
	return nil
}

// callSite returns the first source line below the logrus frames of a stack dump.
func callSite(stack string) string {
	lines := strings.Split(stack, "\n")
	inLogrus := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.Contains(line, "sirupsen/logrus") {
			inLogrus = true
			continue
		}
		if !inLogrus || !strings.HasPrefix(line, "\t") {
			continue
		}
		ctx := strings.Split(line, "startnodes/")
		loc := strings.TrimSpace(ctx[len(ctx)-1])
		if idx := strings.LastIndex(loc, " +0x"); idx >= 0 {
			loc = loc[:idx]
		}
		return loc
	}
	return ""
}

// DebugEnvVar turns on the file:line hook when set; tests also read their log level from it.
const DebugEnvVar = "STARTNODES_LOGLEVEL"

// AddContextHookFromEnv adds the context hook to logger if DebugEnvVar is set.
func AddContextHookFromEnv(logger *log.Logger) bool {
	if os.Getenv(DebugEnvVar) == "" {
		return false
	}
	logger.AddHook(NewContextHook())
	return true
}
