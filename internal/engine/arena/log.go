package arena

import "github.com/sirupsen/logrus"

// Log is the logger used by the arena. It is silent unless its level is raised.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
