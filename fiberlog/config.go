package fiberlog

import "github.com/sirupsen/logrus"

// Config controls which logger instance the request middleware writes
// to and which request tags end up on every entry.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault logs status, latency, method and path through the
// standard logger.
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
