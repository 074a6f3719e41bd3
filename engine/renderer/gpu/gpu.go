// package gpu is the backend boundary of the renderer: a narrow,
// backend-independent command surface over a WebGPU-class API, plus the
// descriptor types the renderer assembles. The engine talks only to these
// interfaces; the wgpu implementation lives alongside them and test code
// substitutes recording fakes.
package gpu

// Device creates GPU resources. All Create methods surface validation
// diagnostics captured by the backend as their error return: a non-nil error
// means the object was rejected and must not be used.
type Device interface {
	// CreateShaderModule compiles a WGSL source string into a shader module.
	//
	// Parameters:
	//   - label: debug label
	//   - source: WGSL source code
	//
	// Returns:
	//   - ShaderModule: the compiled module
	//   - error: compilation or validation failure
	CreateShaderModule(label, source string) (ShaderModule, error)

	// CreateBindGroupLayout creates a bind group layout.
	//
	// Parameters:
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - BindGroupLayout: the created layout
	//   - error: validation failure
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)

	// CreateBindGroup creates a bind group satisfying a layout.
	//
	// Parameters:
	//   - desc: the bind group descriptor
	//
	// Returns:
	//   - BindGroup: the created group
	//   - error: validation failure
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)

	// CreatePipelineLayout creates a pipeline layout from group layouts and
	// push constant ranges.
	//
	// Parameters:
	//   - desc: the pipeline layout descriptor
	//
	// Returns:
	//   - PipelineLayout: the created layout
	//   - error: validation failure
	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)

	// CreateRenderPipeline creates a render pipeline. The backend captures
	// validation diagnostics scoped to the creation attempt and reports them
	// through the error return; on error no usable pipeline exists.
	//
	// Parameters:
	//   - desc: the render pipeline descriptor
	//
	// Returns:
	//   - RenderPipeline: the created pipeline
	//   - error: validation failure
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)

	// CreateBuffer creates a buffer.
	//
	// Parameters:
	//   - desc: the buffer descriptor
	//
	// Returns:
	//   - Buffer: the created buffer
	//   - error: allocation or validation failure
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)

	// CreateTexture creates a 2D texture.
	//
	// Parameters:
	//   - desc: the texture descriptor
	//
	// Returns:
	//   - Texture: the created texture
	//   - error: allocation or validation failure
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CreateSampler creates a sampler.
	//
	// Parameters:
	//   - desc: the sampler descriptor
	//
	// Returns:
	//   - Sampler: the created sampler
	//   - error: validation failure
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)

	// CreateCommandEncoder creates a command encoder.
	//
	// Parameters:
	//   - label: debug label
	//
	// Returns:
	//   - CommandEncoder: the created encoder
	//   - error: allocation failure
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Poll processes outstanding device work. With wait true it blocks until
	// pending operations (including buffer map callbacks) complete.
	//
	// Parameters:
	//   - wait: block until the device is idle
	Poll(wait bool)

	// Release frees the device.
	Release()
}

// Queue submits work to the device.
type Queue interface {
	// WriteBuffer schedules a write of data into buf at offset. The write is
	// applied before subsequently submitted command buffers execute.
	//
	// Parameters:
	//   - buf: destination buffer
	//   - offset: destination byte offset
	//   - data: bytes to write
	WriteBuffer(buf Buffer, offset uint64, data []byte)

	// WriteTexture schedules a write of texel data into a texture region.
	//
	// Parameters:
	//   - dst: destination texture and origin
	//   - data: tightly packed texel bytes
	//   - layout: row layout of data
	//   - size: extent of the written region
	WriteTexture(dst *TexelCopyTexture, data []byte, layout *TexelCopyBufferLayout, size Extent3D)

	// Submit submits finished command buffers for execution.
	//
	// Parameters:
	//   - commands: command buffers in execution order
	Submit(commands ...CommandBuffer)
}

// CommandEncoder records GPU commands into a command buffer.
type CommandEncoder interface {
	// BeginRenderPass begins recording a render pass.
	//
	// Parameters:
	//   - desc: the render pass descriptor
	//
	// Returns:
	//   - RenderPass: the active pass recorder
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass

	// CopyTextureToBuffer records a texture-to-buffer copy. The destination
	// row stride must be aligned to CopyBytesPerRowAlignment.
	//
	// Parameters:
	//   - src: source texture region
	//   - dst: destination buffer and row layout
	//   - size: extent of the copied region
	CopyTextureToBuffer(src *TexelCopyTexture, dst *TexelCopyBuffer, size Extent3D)

	// Finish ends recording and produces a submittable command buffer.
	//
	// Returns:
	//   - CommandBuffer: the finished commands
	//   - error: validation failure during recording
	Finish() (CommandBuffer, error)

	// Release frees the encoder.
	Release()
}

// RenderPass records draw state and draw calls within an active render pass.
// It is not safe for concurrent use; all recording happens on the render
// thread.
type RenderPass interface {
	// SetPipeline binds a render pipeline.
	//
	// Parameters:
	//   - p: the pipeline to bind
	SetPipeline(p RenderPipeline)

	// SetPushConstants uploads push constant data visible to the given stages.
	//
	// Parameters:
	//   - stages: stages that read the data
	//   - offset: byte offset within push constant space
	//   - data: bytes to upload
	SetPushConstants(stages ShaderStage, offset uint32, data []byte)

	// SetBindGroup binds a bind group at a group index.
	//
	// Parameters:
	//   - index: the group index
	//   - group: the bind group
	//   - dynamicOffsets: dynamic offsets for dynamic-offset bindings, or nil
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)

	// SetVertexBuffer binds a vertex buffer to a slot.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//   - buf: the buffer
	SetVertexBuffer(slot uint32, buf Buffer)

	// SetIndexBuffer binds the index buffer.
	//
	// Parameters:
	//   - buf: the buffer
	//   - format: index width
	SetIndexBuffer(buf Buffer, format IndexFormat)

	// Draw issues a non-indexed draw.
	//
	// Parameters:
	//   - vertexCount: vertices per instance
	//   - instanceCount: number of instances
	//   - firstVertex: first vertex index
	//   - firstInstance: first instance index
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed issues an indexed draw.
	//
	// Parameters:
	//   - indexCount: indices per instance
	//   - instanceCount: number of instances
	//   - firstIndex: first index
	//   - baseVertex: value added to each index
	//   - firstInstance: first instance index
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// End finishes the pass.
	End()
}

// Buffer is a GPU buffer.
type Buffer interface {
	// Size returns the buffer size in bytes.
	//
	// Returns:
	//   - uint64: size in bytes
	Size() uint64

	// MapReadAsync begins mapping the buffer for CPU reads. The callback runs
	// once the mapping completes, which requires the device to be polled.
	//
	// Parameters:
	//   - callback: receives nil on success or the mapping failure
	MapReadAsync(callback func(err error))

	// MappedRange returns the mapped bytes. Only valid between a successful
	// MapReadAsync callback and Unmap.
	//
	// Parameters:
	//   - offset: byte offset into the mapping
	//   - size: number of bytes
	//
	// Returns:
	//   - []byte: the mapped bytes
	MappedRange(offset, size uint64) []byte

	// Unmap unmaps the buffer.
	Unmap()

	// Release frees the buffer.
	Release()
}

// Texture is a GPU texture.
type Texture interface {
	// CreateView creates a full view of the texture.
	//
	// Returns:
	//   - TextureView: the created view
	//   - error: validation failure
	CreateView() (TextureView, error)

	// Release frees the texture.
	Release()
}

// TextureView is a view into a texture, bindable or attachable.
type TextureView interface {
	// Release frees the view.
	Release()
}

// Sampler is a GPU sampler.
type Sampler interface {
	// Release frees the sampler.
	Release()
}

// ShaderModule is a compiled shader module.
type ShaderModule interface {
	// Release frees the module.
	Release()
}

// BindGroupLayout is a created bind group layout.
type BindGroupLayout interface {
	// Release frees the layout.
	Release()
}

// BindGroup is a created bind group.
type BindGroup interface {
	// Release frees the group.
	Release()
}

// PipelineLayout is a created pipeline layout.
type PipelineLayout interface {
	// Release frees the layout.
	Release()
}

// RenderPipeline is a created, validated render pipeline.
type RenderPipeline interface {
	// Release frees the pipeline.
	Release()
}

// CommandBuffer is a finished, submittable batch of commands.
type CommandBuffer interface {
	// Release frees the command buffer.
	Release()
}

// Surface is a presentable window surface.
type Surface interface {
	// PreferredFormat returns the surface's preferred texture format.
	//
	// Returns:
	//   - TextureFormat: the preferred format
	PreferredFormat() TextureFormat

	// Configure sizes the surface's swapchain. Must be called before the
	// first AcquireTexture and again after every resize.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//   - mode: present mode
	Configure(width, height int, mode PresentMode)

	// AcquireTexture acquires the next swapchain texture. The returned
	// texture must be released after Present.
	//
	// Returns:
	//   - Texture: the swapchain texture
	//   - error: surface lost or out of memory
	AcquireTexture() (Texture, error)

	// Present presents the most recently acquired texture.
	Present()

	// Release frees the surface.
	Release()
}
