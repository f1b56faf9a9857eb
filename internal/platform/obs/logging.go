package obs

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets up the process-wide logrus logger.
// format is "json" or "text"; an unknown level falls back to info.
func ConfigureLogging(out io.Writer, level, format string) {
	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("invalid log level %q, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
