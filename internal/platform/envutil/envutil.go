package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// String returns the value of name, or def when unset. log may be nil.
func String(name, def string, log *logger.Logger) string {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		debugDefault(log, name, def)
		return def
	}
	return strings.TrimSpace(v)
}

func Int(name string, def int, log *logger.Logger) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		debugDefault(log, name, def)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "env_var", name, "provided", v, "default", def)
		}
		return def
	}
	return i
}

func Bool(name string, def bool, log *logger.Logger) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "":
		debugDefault(log, name, def)
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// Duration reads an integer env var expressed in unit.
func Duration(name string, def time.Duration, unit time.Duration, log *logger.Logger) time.Duration {
	n := Int(name, -1, log)
	if n < 0 {
		return def
	}
	return time.Duration(n) * unit
}

func debugDefault(log *logger.Logger, name string, def interface{}) {
	if log == nil {
		return
	}
	log.Debug("Environment variable not found, using default", "env_var", name, "default", def)
}
