package renderer

import (
	"github.com/fredizzimo/vide/engine/renderer/gpu"
	"github.com/fredizzimo/vide/engine/renderer/shader"
	"github.com/fredizzimo/vide/engine/scene"
)

// WindowedRenderer presents frames to a window surface. It owns the surface
// configuration lifecycle (resize, lost surface, suspend/resume) and resolves
// each frame into the acquired surface texture.
type WindowedRenderer interface {
	// AddDrawable registers a drawable. See Renderer.AddDrawable.
	AddDrawable(d Drawable) error

	// CreatePipelines attempts pipeline creation for every registered
	// drawable. See Renderer.CreatePipelines.
	CreatePipelines()

	// Ready reports whether the named drawable has a validated pipeline.
	Ready(name string) bool

	// Draw acquires the next surface texture, renders the scene into it, and
	// presents. When the surface is lost it is reconfigured and the frame is
	// skipped.
	//
	// Parameters:
	//   - scn: the scene to draw
	//
	// Returns:
	//   - bool: false if the frame was skipped and should be redrawn
	Draw(scn scene.Scene) bool

	// Resize reconfigures the surface and renderer for new dimensions.
	// Zero dimensions (minimized window) are ignored.
	Resize(width, height int)

	// Suspend drops the surface; Draw becomes a no-op until Resume.
	Suspend()

	// Resume installs a freshly created surface after a suspend.
	//
	// Parameters:
	//   - surface: the new window surface
	Resume(surface gpu.Surface)

	// Release frees the underlying renderer's resources. The surface belongs
	// to the GPU context and is not released here.
	Release()
}

type windowedRenderer struct {
	device  gpu.Device
	queue   gpu.Queue
	surface gpu.Surface

	width, height int
	renderer      Renderer
}

var _ WindowedRenderer = &windowedRenderer{}

// NewWindowedRenderer creates a renderer presenting to the given surface. The
// surface is configured immediately with Fifo (vsync) presentation and its
// preferred format.
//
// Parameters:
//   - device: the device, typically from gpu.NewWindowedContext
//   - queue: the device's queue
//   - surface: the window surface
//   - shaders: the shader module provider
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: optional renderer builder options
//
// Returns:
//   - WindowedRenderer: the created renderer
func NewWindowedRenderer(device gpu.Device, queue gpu.Queue, surface gpu.Surface, shaders shader.Modules, width, height int, options ...RendererBuilderOption) WindowedRenderer {
	format := surface.PreferredFormat()
	surface.Configure(width, height, gpu.PresentModeFifo)

	return &windowedRenderer{
		device:  device,
		queue:   queue,
		surface: surface,
		width:   width,
		height:  height,
		renderer: NewRenderer(device, queue, shaders, uint32(width), uint32(height),
			format, options...),
	}
}

func (w *windowedRenderer) AddDrawable(d Drawable) error {
	return w.renderer.AddDrawable(d)
}

func (w *windowedRenderer) CreatePipelines() {
	w.renderer.CreatePipelines()
}

func (w *windowedRenderer) Ready(name string) bool {
	return w.renderer.Ready(name)
}

func (w *windowedRenderer) Draw(scn scene.Scene) bool {
	if w.surface == nil {
		// Suspended; nothing to present.
		return true
	}

	frame, err := w.surface.AcquireTexture()
	if err != nil {
		// Lost or outdated surface. Reconfigure and let the caller redraw.
		logger().Debug("surface texture unavailable", "error", err)
		w.surface.Configure(w.width, w.height, gpu.PresentModeFifo)
		return false
	}

	view, err := frame.CreateView()
	if err != nil {
		logger().Warn("failed to create surface texture view", "error", err)
		frame.Release()
		return false
	}

	w.renderer.Render(scn, view)
	view.Release()
	w.surface.Present()
	frame.Release()
	return true
}

func (w *windowedRenderer) Resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	w.width = width
	w.height = height

	if w.surface != nil {
		w.surface.Configure(width, height, gpu.PresentModeFifo)
	}
	w.renderer.Resize(uint32(width), uint32(height))
}

func (w *windowedRenderer) Suspend() {
	w.surface = nil
}

func (w *windowedRenderer) Resume(surface gpu.Surface) {
	w.surface = surface
	surface.Configure(w.width, w.height, gpu.PresentModeFifo)
}

func (w *windowedRenderer) Release() {
	w.renderer.Release()
}
