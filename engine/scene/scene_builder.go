package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithLayers adds initial layers to the scene in draw order.
//
// Parameters:
//   - layers: the layers to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLayers(layers ...*Layer) SceneBuilderOption {
	return func(s *scene) {
		s.layers = append(s.layers, layers...)
	}
}

// WithResources sets the scene's shared resource bundle.
//
// Parameters:
//   - res: the resource bundle
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithResources(res Resources) SceneBuilderOption {
	return func(s *scene) {
		if res != nil {
			s.resources = res
		}
	}
}

// WithPrepWorkers sets the number of worker goroutines used during the
// parallel CPU prep phase of PrepareFrame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of prep workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPrepWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.prepWorkers = n
	}
}
