package logger

import "go.uber.org/zap"

// NewNamed builds a zap logger for the given environment with a service
// name attached. Development gets console output with colors; everything
// else gets production JSON.
func NewNamed(env, service string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Named(service), nil
}
