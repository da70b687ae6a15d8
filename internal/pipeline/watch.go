package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/backmassage/framegrab/internal/logging"
)

// DefaultSettle is how long a file must go without create/write events
// before Watch hands it on.
const DefaultSettle = 2 * time.Second

// Watch watches dir (non-recursively) for new or rewritten video files and
// calls handle with each path once it has settled for settle. handle runs
// on the calling goroutine, so videos are processed strictly one at a time;
// events arriving meanwhile are buffered by the watcher. Watch returns nil
// when ctx is done.
func Watch(ctx context.Context, dir string, settle time.Duration, log *logging.Logger, handle func(path string)) error {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if log == nil {
		log = logging.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	zl := log.Zerolog()
	zl.Info().Str("event", "watch.started").Str("dir", dir).Msg("watching for new videos")

	pending := make(map[string]time.Time) // path → last event
	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zl.Info().Str("event", "watch.stopped").Msg("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) || !IsVideo(event.Name) {
				continue
			}
			zl.Debug().Str("event", "watch.file_changed").Str("op", event.Op.String()).Str("path", event.Name).Msg("video changed")
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			zl.Error().Err(err).Str("event", "watch.error").Msg("watcher error")

		case now := <-ticker.C:
			for _, path := range settled(pending, now, settle) {
				delete(pending, path)
				if ctx.Err() != nil {
					return nil
				}
				if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
					continue
				}
				handle(path)
			}
		}
	}
}

// settled returns the pending paths whose last event is at least settle
// before now, sorted for deterministic order.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}
