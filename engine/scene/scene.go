package scene

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Resources is an opaque, read-only bundle of application data shared by every
// drawable during a frame. The renderer passes it through unchanged; only the
// application and its drawables interpret the contents.
type Resources map[string]any

// Layer is one ordered slice of the scene. Drawables are invoked once per
// layer each frame, back to front. Prepare, when set, runs during
// PrepareFrame before any draw commands are encoded.
type Layer struct {
	// Name identifies the layer in logs and errors.
	Name string

	// Prepare updates the layer's CPU-side state for the coming frame.
	// It runs on a worker goroutine alongside other layers' Prepare
	// functions and must not touch GPU state.
	Prepare func(res Resources) error

	// Value carries arbitrary per-layer payload for drawables to read
	// during their draw pass.
	Value any
}

// Scene holds the ordered layers and shared resources drawn each frame.
// Layer preparation fans out across a persistent worker pool; everything else
// is guarded by a mutex and safe for concurrent access.
type Scene interface {
	// AddLayer appends a layer to the scene's draw order.
	//
	// Parameters:
	//   - l: the layer to append
	AddLayer(l *Layer)

	// Layers returns the scene's layers in draw order. The returned slice
	// must not be modified.
	//
	// Returns:
	//   - []*Layer: the layers, back to front
	Layers() []*Layer

	// Resources returns the scene's shared resource bundle.
	//
	// Returns:
	//   - Resources: the shared bundle
	Resources() Resources

	// PrepareFrame runs every layer's Prepare function on the worker pool
	// and blocks until all complete.
	//
	// Returns:
	//   - error: the joined errors from all failed layers, or nil
	PrepareFrame() error
}

type scene struct {
	mu        sync.Mutex
	layers    []*Layer
	resources Resources

	// prepPool manages a bounded set of reusable goroutines for the
	// parallel CPU prep phase of PrepareFrame. Workers persist across
	// frames, avoiding per-frame goroutine spawn/teardown overhead.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int
}

var _ Scene = &scene{}

// NewScene creates a Scene with no layers and an empty resource bundle.
//
// Parameters:
//   - options: optional scene builder options
//
// Returns:
//   - Scene: the created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		resources:   make(Resources),
		prepWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Queue size of 256 accommodates typical layer counts with headroom.
	s.prepPool = worker.NewDynamicWorkerPool(s.prepWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) AddLayer(l *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, l)
}

func (s *scene) Layers() []*Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layers
}

func (s *scene) Resources() Resources {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources
}

func (s *scene) PrepareFrame() error {
	s.mu.Lock()
	layers := s.layers
	resources := s.resources
	s.mu.Unlock()

	// A WaitGroup provides per-frame barrier sync since pool.Wait() blocks
	// until workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	errs := make([]error, len(layers))
	taskID := 0
	for i, l := range layers {
		if l.Prepare == nil {
			continue
		}

		wg.Add(1)
		idx := i
		lCap := l // capture for closure
		id := taskID
		taskID++
		s.prepPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				errs[idx] = lCap.Prepare(resources)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}
