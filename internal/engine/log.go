package engine

import "github.com/sirupsen/logrus"

// Log is the logger used by the field facade.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
