package runner

import "context"

// FailureLogger logs failed executions.
type FailureLogger interface {
	LogFailure(err error)
}

// loggingTask wraps a Task with failure logging.
type loggingTask struct {
	inner  Task
	logger FailureLogger
}

// WithLogging wraps a Task to log failures.
func WithLogging(task Task, logger FailureLogger) Task {
	if logger == nil {
		return task
	}
	return &loggingTask{
		inner:  task,
		logger: logger,
	}
}

func (l *loggingTask) Do(ctx context.Context) error {
	err := l.inner.Do(ctx)
	if err != nil {
		l.logger.LogFailure(err)
	}
	return err
}
