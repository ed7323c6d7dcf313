package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one scheduled unit of work. The context is cancelled after timeout.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	log     *logrus.Logger
	timeout time.Duration
}

func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{log}), cron.WithChain(cron.Recover(cronLogger{log}))),
		log:     log,
		timeout: time.Minute,
	}
}

// Add registers job under a cron spec such as "@every 1h" or "0 0 * * *".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	return err
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.WithError(err).WithField("job", name).Error("scheduled job failed")
		return
	}
	s.log.WithFields(logrus.Fields{"job": name, "took": time.Since(start).String()}).Debug("scheduled job done")
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// cronLogger routes cron's own messages, recovered panics included, to logrus.
type cronLogger struct{ log *logrus.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
