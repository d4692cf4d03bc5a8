// Package monitoring exposes a process-wide error reporter. The default
// reporter discards everything until Init installs a real one.
package monitoring

import (
	"sync/atomic"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

type holder struct{ m Monitor }

var current atomic.Value

func init() { current.Store(holder{NopMonitor{}}) }

// Init sets the global monitor implementation. A nil monitor restores the
// no-op reporter.
func Init(m Monitor) {
	if m == nil {
		m = NopMonitor{}
	}
	current.Store(holder{m})
}

// Current returns the installed monitor.
func Current() Monitor { return current.Load().(holder).m }

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// Recover reports a panic to the monitor and re-panics. It must be deferred
// directly.
func Recover() {
	if r := recover(); r != nil {
		if m, ok := Current().(interface{ RecoverValue(any) }); ok {
			m.RecoverValue(r)
		}
		panic(r)
	}
}

// Flush flushes buffered events.
func Flush(d time.Duration) { Current().Flush(d) }
