package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// ConfigureLogger applies the level and switches to JSON output in production.
func ConfigureLogger(level string, production bool) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		Logger.SetLevel(lvl)
	} else {
		Logger.Warnf("unknown log level %q, keeping %s", level, Logger.GetLevel())
	}
	if production {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}
}
