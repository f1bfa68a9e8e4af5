// file: logger/logger.go

package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init is called so
// that packages logging during tests never hit a nil logger.
var Log = logrus.New()

// Init resets the logger to its defaults: text output on stdout at info level.
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// Configure applies the level and format from configuration. Unknown levels
// fall back to info.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
