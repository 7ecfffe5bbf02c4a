/*package logging holds the process-wide logging mode of the telescope
command. Library packages never log; only the modes in cmd consult Mode.*/
package logging

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// Mode is global so that it doesn't need to be threaded through every mode.
var (
	Mode Flag = Nil
)

// ParseFlag converts the name of a logging mode into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch s {
	case "nil", "": return Nil, nil
	case "performance": return Performance, nil
	case "debug": return Debug, nil
	}
	return Nil, fmt.Errorf(
		"I don't recognize the logging mode '%s'. The valid modes are "+
			"'nil', 'performance', and 'debug'.", s,
	)
}

func (f Flag) String() string {
	switch f {
	case Nil: return "nil"
	case Performance: return "performance"
	case Debug: return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// Timer reports how long a stage of a mode took. It only logs when Mode is
// Performance or higher.
type Timer struct {
	name  string
	start time.Time
}

// StartTimer starts timing the named stage.
func StartTimer(name string) *Timer {
	if Mode >= Debug { log.Printf("Starting %s.", name) }
	return &Timer{name, time.Now()}
}

// Elapsed returns the time since the timer was started.
func (t *Timer) Elapsed() time.Duration { return time.Since(t.start) }

// Stop logs the elapsed time of the stage and returns it.
func (t *Timer) Stop() time.Duration {
	dt := t.Elapsed()
	if Mode >= Performance {
		log.Printf("%s took %.3g s. %s", t.name, dt.Seconds(), MemString())
	}
	return dt
}
