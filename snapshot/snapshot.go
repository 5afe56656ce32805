// Package snapshot implements the async, fail-closed on-disk snapshot
// writer of spec §6: a goroutine that owns its own state and accepts
// immutable values over a channel, grounded on the teacher's
// goroutine-owns-its-state pattern (gen.population.loop,
// diffusion/graph's node.run) rather than on a mutex-guarded shared writer.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Writer periodically serialises the most recently submitted value to disk
// as JSON, via a temp-file-plus-rename so a reader never observes a partial
// write. IO failures are logged and swallowed; the run that feeds the writer
// is never interrupted by a snapshot failure.
type Writer struct {
	path     string
	interval time.Duration
	log      *zap.SugaredLogger

	submit chan any
	closec chan chan struct{}
}

// New starts a Writer that snapshots to path every interval, ticking only
// when a new value has been submitted since the last tick. log must not be
// nil.
func New(path string, interval time.Duration, log *zap.SugaredLogger) *Writer {
	w := &Writer{
		path:     path,
		interval: interval,
		log:      log,
		submit:   make(chan any),
		closec:   make(chan chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var pending any
	var dirty bool

	for {
		select {
		case v := <-w.submit:
			pending = v
			dirty = true

		case <-ticker.C:
			if !dirty {
				continue
			}
			if err := writeAtomic(w.path, pending); err != nil {
				w.log.Errorw("snapshot write failed", "path", w.path, "error", err)
				continue
			}
			dirty = false

		case ch := <-w.closec:
			if dirty {
				if err := writeAtomic(w.path, pending); err != nil {
					w.log.Errorw("final snapshot write failed", "path", w.path, "error", err)
				}
			}
			ch <- struct{}{}
			return
		}
	}
}

// Submit hands the writer a new value to snapshot on its next tick. Submit
// never blocks the caller past the writer's current select iteration.
func (w *Writer) Submit(v any) {
	w.submit <- v
}

// Close stops the writer's goroutine, flushing one final snapshot if a
// submitted value is still pending.
func (w *Writer) Close() {
	ch := make(chan struct{})
	w.closec <- ch
	<-ch
}

// writeAtomic serialises v as JSON to a temp file in path's directory, then
// renames it over path — a reader of path never observes a partial write.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
