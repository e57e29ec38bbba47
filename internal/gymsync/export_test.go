package gymsync

import "time"

// SetNow pins the engine clock so tests can assert on fetch windows and
// watermark values.
func SetNow(e *Engine, now func() time.Time) {
	e.now = now
}
