package box3d

import (
	"github.com/sirupsen/logrus"
)

// Package level logger, used where no tree is at hand (assertions).
var b3Log logrus.FieldLogger = logrus.StandardLogger().WithField("component", "box3d")

/// Replace the package logger. Trees created afterwards without an explicit
/// logger in their def use it too.
func B3SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		logger = logrus.StandardLogger().WithField("component", "box3d")
	}
	b3Log = logger
}
