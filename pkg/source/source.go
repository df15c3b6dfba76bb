// Package source provides sources of gallery items. A source delivers a
// complete list or fails; it never delivers a partial list.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elves/gallery/pkg/gallery"
	"github.com/elves/gallery/pkg/logutil"
	"github.com/elves/gallery/pkg/store"
)

var logger = logutil.GetLogger("[source] ")

// Source loads a list of items.
type Source[T any] interface {
	// Load blocks until the items are available, the context is done, or
	// loading fails. The returned Items is always present when err is nil.
	Load(ctx context.Context) (gallery.Items[T], error)
}

// Func adapts a function to a Source.
type Func[T any] func(ctx context.Context) (gallery.Items[T], error)

// Load calls f.
func (f Func[T]) Load(ctx context.Context) (gallery.Items[T], error) { return f(ctx) }

// Static returns a Source that delivers the given items immediately. A nil
// slice is delivered as an empty list.
func Static[T any](items []T) Source[T] {
	return Func[T](func(context.Context) (gallery.Items[T], error) {
		return gallery.Present(items), nil
	})
}

// Lines returns a Source that delivers each line read from r as an item.
// Empty lines are skipped.
func Lines(r io.Reader) Source[string] {
	return Func[string](func(ctx context.Context) (gallery.Items[string], error) {
		var lines []string
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return gallery.Absent[string](), err
			}
			if line := scanner.Text(); line != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return gallery.Absent[string](), fmt.Errorf("read lines: %w", err)
		}
		logger.Printf("read %d lines", len(lines))
		return gallery.Present(lines), nil
	})
}

// Store returns a Source that delivers the items of a bucket in a store.
func Store(st store.Store, bucket string) Source[store.Item] {
	return Func[store.Item](func(context.Context) (gallery.Items[store.Item], error) {
		items, err := st.Items(bucket)
		if err != nil {
			return gallery.Absent[store.Item](), err
		}
		logger.Printf("loaded %d items from bucket %s", len(items), bucket)
		return gallery.Present(items), nil
	})
}

// Delayed returns a Source that waits for d before loading from src.
func Delayed[T any](src Source[T], d time.Duration) Source[T] {
	return Func[T](func(ctx context.Context) (gallery.Items[T], error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return src.Load(ctx)
		case <-ctx.Done():
			return gallery.Absent[T](), ctx.Err()
		}
	})
}

// Never returns a Source that never delivers, leaving the gallery loading
// until the context is done.
func Never[T any]() Source[T] {
	return Func[T](func(ctx context.Context) (gallery.Items[T], error) {
		<-ctx.Done()
		return gallery.Absent[T](), ctx.Err()
	})
}

// Start loads from src in a separate goroutine and passes the result to
// deliver, or the error to fail. Errors caused by ctx being done are not
// passed to fail.
func Start[T any](ctx context.Context, src Source[T], deliver func(gallery.Items[T]), fail func(error)) {
	go func() {
		items, err := src.Load(ctx)
		switch {
		case err == nil:
			deliver(items)
		case ctx.Err() != nil:
			logger.Println("loading canceled:", err)
		default:
			logger.Println("loading failed:", err)
			fail(err)
		}
	}()
}
