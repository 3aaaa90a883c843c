package thumbnail

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

type cacheEntry struct {
	size     int
	modTime  time.Time
	fileSize int64
	data     []byte
}

// Loader generates thumbnails with a bounded number of decodes running at
// once and keeps the results in memory.
//
// A cached thumbnail is reused while the file's modification time and size
// and the requested thumbnail size stay the same. One thumbnail is kept per path.
type Loader struct {
	sem      *semaphore.Weighted
	generate func(imagePath string, size int) ([]byte, error)

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewLoader returns a loader running at most limit decodes at a time.
// A limit below 1 means one per CPU.
func NewLoader(limit int) *Loader {
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	return &Loader{
		sem:      semaphore.NewWeighted(int64(limit)),
		generate: Generate,
		cache:    map[string]cacheEntry{},
	}
}

// Load returns the thumbnail for imagePath, from the cache when it is
// still current. It waits for a free decode slot; when ctx is done first,
// ctx's error is returned and nothing is decoded.
func (l *Loader) Load(ctx context.Context, imagePath string, size int) ([]byte, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, err
	}
	if data, ok := l.lookup(imagePath, size, info); ok {
		return data, nil
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	// Acquire may succeed after ctx is done
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// generated by someone else while waiting
	if data, ok := l.lookup(imagePath, size, info); ok {
		return data, nil
	}

	data, err := l.generate(imagePath, size)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[imagePath] = cacheEntry{
		size:     size,
		modTime:  info.ModTime(),
		fileSize: info.Size(),
		data:     data,
	}
	l.mu.Unlock()

	return data, nil
}

func (l *Loader) lookup(imagePath string, size int, info os.FileInfo) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.cache[imagePath]
	if !ok || entry.size != size || entry.fileSize != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return entry.data, true
}

// Prune drops the thumbnails of every path not in keep.
func (l *Loader) Prune(keep []string) {
	wanted := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		wanted[p] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for p := range l.cache {
		if _, ok := wanted[p]; !ok {
			delete(l.cache, p)
		}
	}
}

// Len returns the number of cached thumbnails.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}
