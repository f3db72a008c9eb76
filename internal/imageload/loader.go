package imageload

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/sync/singleflight"
)

// prefetchWorkers bounds concurrent downloads during Prefetch
const prefetchWorkers = 4

// Fetcher downloads the raw bytes behind an address
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Loader resolves an address to a decoded image, consulting the cache
// before the network. A nil cache disables caching. Concurrent requests
// for the same address share one download.
type Loader struct {
	fetcher Fetcher
	cache   *Cache
	maxEdge int
	group   singleflight.Group
}

// NewLoader creates a loader
func NewLoader(fetcher Fetcher, cache *Cache, maxEdge int) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		maxEdge: maxEdge,
	}
}

// Bytes returns the raw image bytes for url. The returned slice may be
// shared with concurrent callers and must not be modified.
func (l *Loader) Bytes(ctx context.Context, url string) ([]byte, error) {
	v, err, _ := l.group.Do(url, func() (interface{}, error) {
		return l.bytes(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) bytes(ctx context.Context, url string) ([]byte, error) {
	if l.cache != nil {
		data, ok, err := l.cache.Get(ctx, url)
		if err != nil {
			log.Printf("Image cache read failed for %s: %v", url, err)
		} else if ok {
			return data, nil
		}
	}

	data, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	log.Printf("Fetched %s (%s)", url, humanize.Bytes(uint64(len(data))))

	if l.cache != nil {
		if err := l.cache.Put(ctx, url, data); err != nil {
			log.Printf("Image cache write failed for %s: %v", url, err)
		}
	}
	return data, nil
}

// Image returns the decoded, size-limited image for url
func (l *Loader) Image(ctx context.Context, url string) (image.Image, error) {
	data, err := l.Bytes(ctx, url)
	if err != nil {
		return nil, err
	}
	img, format, err := Decode(data, l.maxEdge)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	b := img.Bounds()
	log.Printf("Decoded %s as %s (%dx%d)", url, format, b.Dx(), b.Dy())
	return img, nil
}

// Load resolves url on a new goroutine and calls done with the result.
// done runs off the UI thread; callers marshal back with fyne.Do.
func (l *Loader) Load(ctx context.Context, url string, done func(image.Image, error)) {
	go func() {
		img, err := l.Image(ctx, url)
		done(img, err)
	}()
}

// Prefetch warms the cache for urls, downloading concurrently.
// Failures are logged and skipped.
func (l *Loader) Prefetch(ctx context.Context, urls ...string) {
	swg := sizedwaitgroup.New(prefetchWorkers)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}
		go func(url string) {
			defer swg.Done()
			if _, err := l.Bytes(ctx, url); err != nil {
				log.Printf("Prefetch failed: %v", err)
			}
		}(url)
	}
	swg.Wait()
}

// ClearCache drops every cached image
func (l *Loader) ClearCache(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.Clear(ctx)
}
