package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	instance *zap.SugaredLogger
	once     sync.Once
)

type Config struct {
	Development bool
	Env         string
}

// New returns the process-wide logger, named for this service so its
// lines stay attributable when logs from several services are merged.
func New(cfg Config) (*zap.SugaredLogger, error) {
	var err error
	once.Do(func() {
		var l *zap.Logger
		if cfg.Development {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return
		}
		s := l.Named("feed-service").Sugar()
		if cfg.Env != "" {
			s = s.With("env", cfg.Env)
		}
		instance = s
	})
	return instance, err
}
