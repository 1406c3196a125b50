package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup returns a JSON-formatted logrus logger writing to stdout.
func Setup() *logrus.Logger {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: logrus.InfoLevel,
	}

	return &logger
}
