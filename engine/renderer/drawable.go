// Package renderer turns heterogeneous drawable objects into validated GPU
// render pipelines and drives their per-frame draw calls. Each drawable
// declares the resources it needs bound through the Reference contract; the
// renderer assembles bind group layouts, creates pipelines, and injects the
// shared per-frame constants uniformly.
package renderer

import (
	"fmt"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/scene"
)

// Drawable is the contract implemented by each renderable kind. A drawable is
// constructed once at registration time from renderer-owned resources and
// lives for the duration of the renderer; its pipeline state is owned by the
// renderer, not the drawable.
type Drawable interface {
	// Name returns the drawable's stable identifier. It is used verbatim to
	// look up the drawable's vertex and fragment shader modules and must be
	// unique across registered drawables.
	//
	// Returns:
	//   - string: the identifier
	Name() string

	// References returns the drawable's current ordered resource references.
	// It is called repeatedly during bind group and pipeline construction
	// and must return a stable answer within one such pass.
	//
	// Returns:
	//   - []Reference: the references, in declaration order
	References() []Reference

	// Draw emits the drawable's draw commands into the active render pass.
	// The renderer has already bound the pipeline, push constants, and both
	// bind groups; Draw must not rebind group indices 0 or 1.
	//
	// Parameters:
	//   - queue: the command queue, for buffer uploads
	//   - pass: the active render pass
	//   - constants: the shared per-frame constants
	//   - resources: the application's shared resource bundle
	//   - layer: the layer currently being drawn
	Draw(queue gpu.Queue, pass gpu.RenderPass, constants ShaderConstants, resources scene.Resources, layer *scene.Layer)
}

// Reference describes one GPU-bindable resource (or vertex stream) belonging
// to a drawable. Binding indices are never self-assigned: the renderer
// assigns each contributing reference its position in declaration order after
// filtering out references that contribute nothing.
type Reference interface {
	// Layout returns the binding slot this reference occupies, or nil if it
	// does not bind a resource. The Binding field is ignored; the renderer
	// assigns it.
	Layout() *gpu.BindGroupLayoutEntry

	// Entry returns the concrete resource satisfying this reference's slot,
	// or nil. A reference returning a layout must also return an entry, and
	// vice versa.
	Entry() *gpu.BindGroupEntry

	// Vertex returns this reference's vertex buffer stream layout, or nil.
	// Independent of binding slot assignment.
	Vertex() *gpu.VertexBufferLayout
}

// BaseReference supplies the all-nil defaults of the Reference contract.
// Embed it and override only the methods the resource actually contributes.
type BaseReference struct{}

func (BaseReference) Layout() *gpu.BindGroupLayoutEntry { return nil }
func (BaseReference) Entry() *gpu.BindGroupEntry        { return nil }
func (BaseReference) Vertex() *gpu.VertexBufferLayout   { return nil }

// contributingReferences returns the single filtered list of references that
// bind resources, in declaration order. Both the bind group layout and the
// bind group are derived from this one list so their binding indices can
// never disagree. A reference supplying a layout without an entry, or an
// entry without a layout, is a broken contract and panics.
func contributingReferences(name string, refs []Reference) []Reference {
	contributing := make([]Reference, 0, len(refs))
	for i, ref := range refs {
		hasLayout := ref.Layout() != nil
		hasEntry := ref.Entry() != nil
		if hasLayout != hasEntry {
			panic(fmt.Sprintf("drawable %s reference %d supplies layout=%t entry=%t; both or neither required", name, i, hasLayout, hasEntry))
		}
		if hasLayout {
			contributing = append(contributing, ref)
		}
	}
	return contributing
}

// vertexBufferLayouts collects the vertex stream layouts of the given
// references, independently of binding slot filtering.
func vertexBufferLayouts(refs []Reference) []gpu.VertexBufferLayout {
	layouts := make([]gpu.VertexBufferLayout, 0, len(refs))
	for _, ref := range refs {
		if v := ref.Vertex(); v != nil {
			layouts = append(layouts, *v)
		}
	}
	return layouts
}
