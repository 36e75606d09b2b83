package buffer

import "github.com/sirupsen/logrus"

// Log is the logger used for aborted edits and restores.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
