package llm

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single completion call.
type CallEvent struct {
	Model     string
	Fallback  bool
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about completion calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fallback := ""
	if event.Fallback {
		fallback = " fallback=true"
	}
	fmt.Fprintf(o.w, "[%s] llm_call model=%s latency_ms=%d status=%s%s\n",
		ts, event.Model, event.LatencyMs, status, fallback)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
