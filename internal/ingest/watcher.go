// Package ingest discovers declaration documents dropped into watched
// directories and feeds them to the processing queue.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"declascan/constants"
)

type WatchConfig struct {
	Roots       []string // directories to watch (recursive)
	AllowedExts map[string]struct{}
	InitialScan bool          // if true, walk roots and emit existing files
	Debounce    time.Duration // coalesce rapid update/rename bursts
}

// StartWatcher emits paths of dropped documents until ctx is done. Files
// still being written are coalesced by the debounce window. The pending set
// and its timer live entirely on the event loop goroutine: the timer only
// signals through its channel, so bursts never race the flush.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		slog.Error("watcher start failed: no roots provided")
		return nil, nil, errors.New("no roots provided")
	}
	if cfg.AllowedExts == nil {
		cfg.AllowedExts = constants.AllowedExtensions
	}
	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	// Add roots recursively
	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && allowed(path, cfg.AllowedExts) {
				select {
				case evCh <- path:
				default:
				}
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			slog.Error("failed to add root directory", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	go watchLoop(ctx, w, cfg, evCh, errCh)

	return evCh, errCh, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, cfg WatchConfig, evCh chan string, errCh chan error) {
	defer close(evCh)
	defer close(errCh)
	defer w.Close()

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time // nil while nothing is pending

	flush := func() {
		for p := range pending {
			select {
			case evCh <- p:
			default:
			}
			delete(pending, p)
		}
		fire = nil
	}
	rearm := func() {
		if timer == nil {
			timer = time.NewTimer(cfg.Debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(cfg.Debounce)
		}
		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-fire:
			flush()
		case e := <-w.Events:
			if e.Op&fsnotify.Create == fsnotify.Create {
				// A created directory needs watching too; for files the
				// add is a harmless no-op error.
				tryAddDir(w, e.Name)
			}

			if allowed(e.Name, cfg.AllowedExts) && (e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename)) != 0 {
				pending[e.Name] = struct{}{}
				if cfg.Debounce > 0 {
					rearm()
				} else {
					flush()
				}
			}
		case err := <-w.Errors:
			slog.Error("watcher error", "error", err)
			select {
			case errCh <- err:
			default:
			}
		}
	}
}

func allowed(path string, exts map[string]struct{}) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := exts[ext]
	return ok
}

func tryAddDir(w *fsnotify.Watcher, path string) {
	_ = w.Add(path)
}
