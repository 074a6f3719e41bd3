package renderer

import (
	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

// RendererBuilderOption is a functional option for configuring a Renderer.
// Use the With* functions to create options.
type RendererBuilderOption func(r *renderer)

// WithClearColor sets the color the render target is cleared to at the start
// of every frame. Defaults to transparent black.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithClearColor(c gpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithUniversalReferences appends resources to the universal bind group
// (group index 1) after the renderer's default sampler. Binding indices are
// assigned in declaration order, so the sampler is always binding 0 and the
// given references follow from binding 1.
//
// Parameters:
//   - refs: the references to append
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithUniversalReferences(refs ...Reference) RendererBuilderOption {
	return func(r *renderer) {
		r.extraUniversalRefs = append(r.extraUniversalRefs, refs...)
	}
}
