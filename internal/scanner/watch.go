package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Events arriving within this window are reported as one change.
const settleDelay = 250 * time.Millisecond

// Watch calls onChange whenever files in folder are created, removed,
// renamed or written, until ctx is done. Bursts of events are coalesced.
//
// onChange runs on the watcher's goroutine. Watch returns once the watch is
// set up; an error means the folder cannot be watched.
func Watch(ctx context.Context, folder string, log logrus.FieldLogger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(folder); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", folder, err)
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(settleDelay)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
					continue
				}
				log.WithField("event", event.String()).Debug("Wallpapers folder changed")
				timer.Reset(settleDelay)
			case <-timer.C:
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Watch error")
			}
		}
	}()

	return nil
}
