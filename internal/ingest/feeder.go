package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"declascan/internal/async"
)

// Feed bridges a watcher event stream onto the processing queue. Blocks
// until ctx is done or the event channel closes.
func Feed(ctx context.Context, logger *slog.Logger, events <-chan string, queue async.Queue) {
	if logger == nil {
		logger = slog.Default()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			job := async.Job{
				Path:         path,
				OriginalName: filepath.Base(path),
				SubmittedAt:  time.Now(),
			}
			if err := queue.Enqueue(ctx, job); err != nil {
				logger.Error("failed to enqueue dropped file", "path", path, "error", err)
			}
		}
	}
}
