package dirtree

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// pkgLogger is consulted by traverse.go, quiesce.go and tree.go for
// trace-level diagnostics: lock acquisitions during descent, refcounts
// while unwinding, and move's computed LCA. It defaults to a discard
// logger, so a caller who never opts in gets no output; each trace call
// still loads the logger and evaluates its arguments.
var pkgLogger atomic.Value // holds *logrus.Logger

func init() {
	l := logrus.New()
	l.SetOutput(io.Discard)
	pkgLogger.Store(l)
}

// SetLogger installs l as the package-wide trace logger. The per-node
// tracing is emitted only when l's level is logrus.TraceLevel; at any
// other level the trace calls produce no output.
func SetLogger(l *logrus.Logger) {
	pkgLogger.Store(l)
}

func logger() *logrus.Logger {
	return pkgLogger.Load().(*logrus.Logger)
}

func trace(format string, args ...interface{}) {
	logger().Tracef(format, args...)
}
