package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"coachingku_backend/internals/configs"
)

// Log is the global logger instance.
var Log = logrus.New()

func Init() {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(configs.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	env := strings.ToLower(configs.GetEnv("ENVIRONMENT", "development"))
	if env == "production" || env == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

func Get() *logrus.Logger {
	return Log
}
