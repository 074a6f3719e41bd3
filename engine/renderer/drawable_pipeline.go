package renderer

import (
	"fmt"

	"github.com/fredizzimo/vide/common"
	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/renderer/shader"
	"github.com/fredizzimo/vide/engine/scene"
)

// drawablePipeline wraps one registered drawable with its derived bind group
// and its optionally-absent render pipeline. The bind group layout and bind
// group are built once at construction from the drawable's references as they
// existed at that moment; the render pipeline is created separately and stays
// nil until a creation attempt passes validation.
type drawablePipeline struct {
	drawable Drawable

	name string

	bindGroupLayout gpu.BindGroupLayout
	bindGroup       gpu.BindGroup

	// renderPipeline is nil until createPipeline succeeds. Written only by
	// createPipeline on the render thread; read by ready and draw.
	renderPipeline gpu.RenderPipeline
}

// newDrawablePipeline builds the drawable's bind group layout and bind group
// and wraps them with the drawable in a not-ready pipeline. Binding indices
// 0..N-1 are assigned from the single filtered contributing reference list.
// GPU allocation failure here aborts registration and panics.
func newDrawablePipeline(device gpu.Device, drawable Drawable) *drawablePipeline {
	name := drawable.Name()

	contributing := contributingReferences(name, drawable.References())
	layoutEntries := make([]gpu.BindGroupLayoutEntry, len(contributing))
	groupEntries := make([]gpu.BindGroupEntry, len(contributing))
	for i, ref := range contributing {
		layoutEntry := *ref.Layout()
		layoutEntry.Binding = uint32(i)
		layoutEntries[i] = layoutEntry

		groupEntry := *ref.Entry()
		groupEntry.Binding = uint32(i)
		groupEntries[i] = groupEntry
	}

	bindGroupLayout, err := device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label:   fmt.Sprintf("%s bind group layout", name),
		Entries: layoutEntries,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create %s bind group layout: %v", name, err))
	}

	bindGroup, err := device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:   fmt.Sprintf("%s bind group", name),
		Layout:  bindGroupLayout,
		Entries: groupEntries,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create %s bind group: %v", name, err))
	}

	return &drawablePipeline{
		drawable:        drawable,
		name:            name,
		bindGroupLayout: bindGroupLayout,
		bindGroup:       bindGroup,
	}
}

func (dp *drawablePipeline) tryCreatePipeline(device gpu.Device, shaders shader.Modules, format gpu.TextureFormat, universalLayout gpu.BindGroupLayout) (gpu.RenderPipeline, error) {
	pipelineLayout, err := device.CreatePipelineLayout(&gpu.PipelineLayoutDescriptor{
		Label:            fmt.Sprintf("%s Pipeline Layout", dp.name),
		BindGroupLayouts: []gpu.BindGroupLayout{dp.bindGroupLayout, universalLayout},
		PushConstantRanges: []gpu.PushConstantRange{{
			Stages: gpu.ShaderStageAll,
			Start:  0,
			End:    common.SizeOf[ShaderConstants](),
		}},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	vertexModule, err := shaders.Vertex(dp.name)
	if err != nil {
		return nil, err
	}
	fragmentModule, err := shaders.Fragment(dp.name)
	if err != nil {
		return nil, err
	}

	return device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s Pipeline", dp.name),
		Layout: pipelineLayout,
		Vertex: gpu.VertexState{
			Module:     vertexModule,
			EntryPoint: "main",
			Buffers:    vertexBufferLayouts(dp.drawable.References()),
		},
		Fragment: &gpu.FragmentState{
			Module:     fragmentModule,
			EntryPoint: "main",
			Targets: []gpu.ColorTargetState{{
				Format:    format,
				Blend:     gpu.BlendStateAlphaBlending(),
				WriteMask: gpu.ColorWriteMaskAll,
			}},
		},
		Primitive: gpu.PrimitiveState{
			Topology:  gpu.PrimitiveTopologyTriangleList,
			FrontFace: gpu.FrontFaceCCW,
			CullMode:  gpu.CullModeNone,
		},
		Multisample: gpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
}

// createPipeline attempts to build the drawable's render pipeline. On any
// failure (shader lookup miss or driver validation error) the attempt is
// logged and dropped: a previously installed pipeline is kept, and a pipeline
// that was never installed stays absent. Installation happens only on the
// success path.
func (dp *drawablePipeline) createPipeline(device gpu.Device, shaders shader.Modules, format gpu.TextureFormat, universalLayout gpu.BindGroupLayout) {
	pipeline, err := dp.tryCreatePipeline(device, shaders, format, universalLayout)
	if err != nil {
		logger().Debug("pipeline creation failed", "drawable", dp.name, "error", err)
		return
	}

	if dp.renderPipeline != nil {
		dp.renderPipeline.Release()
	}
	dp.renderPipeline = pipeline
}

// ready reports whether a validated render pipeline is installed.
func (dp *drawablePipeline) ready() bool {
	return dp.renderPipeline != nil
}

// draw binds the pipeline, pushes the per-frame constants to all stages,
// binds the private bind group at index 0 and the universal bind group at
// index 1, then delegates to the drawable's own draw logic. The order is
// fixed: the drawable may rely on the bound state but must not override it.
// The caller must ensure ready() is true.
func (dp *drawablePipeline) draw(queue gpu.Queue, pass gpu.RenderPass, constants ShaderConstants, universalBindGroup gpu.BindGroup, resources scene.Resources, layer *scene.Layer) {
	pass.SetPipeline(dp.renderPipeline)
	pass.SetPushConstants(gpu.ShaderStageAll, 0, common.StructToBytes(&constants))
	pass.SetBindGroup(0, dp.bindGroup, nil)
	pass.SetBindGroup(1, universalBindGroup, nil)

	dp.drawable.Draw(queue, pass, constants, resources, layer)
}

// release frees the pipeline's GPU resources.
func (dp *drawablePipeline) release() {
	if dp.renderPipeline != nil {
		dp.renderPipeline.Release()
		dp.renderPipeline = nil
	}
	dp.bindGroup.Release()
	dp.bindGroupLayout.Release()
}
