package figure

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

// ErrLoaderClosed is passed to callbacks of loads submitted after Close.
var ErrLoaderClosed = errors.New("figure: image loader closed")

// ImageLoader decodes images off the render goroutine.
type ImageLoader interface {
	// Load decodes the image at path in the background and calls done with the result.
	// done runs on a worker goroutine.
	//
	// Parameters:
	//   - path: the image path
	//   - done: called exactly once with the decoded pixels or an error
	Load(path string, done func(common.TextureStagingData, error))

	// Wait blocks until every submitted load has completed.
	Wait()

	// Close stops the workers. Loads submitted afterwards fail with ErrLoaderClosed.
	Close()
}

// imageLoader is the implementation of the ImageLoader interface.
type imageLoader struct {
	mu *sync.Mutex

	pool    worker.DynamicWorkerPool
	read    func(path string) (common.TextureStagingData, error)
	pending sync.WaitGroup
	nextID  int
	closed  bool
}

var _ ImageLoader = &imageLoader{}

// ImageLoaderOption is a functional option for configuring an ImageLoader.
type ImageLoaderOption func(*imageLoader)

// WithImageReader replaces the function that reads and decodes an image path.
func WithImageReader(read func(path string) (common.TextureStagingData, error)) ImageLoaderOption {
	return func(l *imageLoader) {
		if read != nil {
			l.read = read
		}
	}
}

// NewImageLoader creates a loader backed by a worker pool.
//
// Parameters:
//   - workers: the maximum number of concurrent decodes
//   - options: functional options to configure the loader
//
// Returns:
//   - ImageLoader: the new loader
func NewImageLoader(workers int, options ...ImageLoaderOption) ImageLoader {
	l := &imageLoader{
		mu:   &sync.Mutex{},
		read: common.LoadImage,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(workers, 64, time.Second)
	return l
}

func (l *imageLoader) Load(path string, done func(common.TextureStagingData, error)) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		done(common.TextureStagingData{}, ErrLoaderClosed)
		return
	}
	id := l.nextID
	l.nextID++
	l.pending.Add(1)
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: path,
		Do: func() (any, error) {
			defer l.pending.Done()
			data, err := l.read(path)
			done(data, err)
			return nil, err
		},
	})
}

func (l *imageLoader) Wait() {
	l.pending.Wait()
}

func (l *imageLoader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.pending.Wait()
	l.pool.Stop()
}

// bindImage loads path and binds the decoded texture to mat once it arrives. The material keeps
// rendering without a texture until then; a failed load is logged and leaves it untextured.
func bindImage(loader ImageLoader, logger *slog.Logger, mat *node.Material, path string) {
	if loader == nil || path == "" {
		return
	}
	loader.Load(path, func(data common.TextureStagingData, err error) {
		if err != nil {
			logger.Warn("image load failed", "path", path, "error", err)
			return
		}
		mat.SetTexture(node.NewTexture(data))
	})
}
