package fdcore

import "github.com/sirupsen/logrus"

// discardLogger is used whenever a Model is built without an explicit
// logger, mirroring the nil-safe monitor pattern the teacher uses for
// SolverMonitor: callers never have to nil-check before logging.
var discardLogger = func() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(logrusDiscard{})
	return logrus.NewEntry(l)
}()

type logrusDiscard struct{}

func (logrusDiscard) Write(p []byte) (int, error) { return len(p), nil }

// WithLogger attaches a structured logger to the model. The search loop
// logs at Debug only the clauses the explanation layer learns from a
// contradiction (see logContradiction); decisions, backtracks and
// restarts are not logged.
func (m *Model) WithLogger(entry *logrus.Entry) *Model {
	if entry == nil {
		entry = discardLogger
	}
	m.log = entry
	return m
}

func (m *Model) logger() *logrus.Entry {
	if m.log == nil {
		return discardLogger
	}
	return m.log
}
