// Package shader loads WGSL shader sources from a file system and compiles
// them into GPU shader modules on demand, caching the results.
package shader

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

// Modules is the interface for a compiled shader module provider. Sources are
// looked up by drawable name: a drawable named "quad" uses "quad.vert.wgsl"
// and "quad.frag.wgsl".
type Modules interface {
	// Vertex returns the compiled vertex shader module for the given name,
	// compiling and caching it on first use.
	//
	// Parameters:
	//   - name: the drawable name the shader belongs to
	//
	// Returns:
	//   - gpu.ShaderModule: the compiled module
	//   - error: source lookup or compilation failure
	Vertex(name string) (gpu.ShaderModule, error)

	// Fragment returns the compiled fragment shader module for the given
	// name, compiling and caching it on first use.
	//
	// Parameters:
	//   - name: the drawable name the shader belongs to
	//
	// Returns:
	//   - gpu.ShaderModule: the compiled module
	//   - error: source lookup or compilation failure
	Fragment(name string) (gpu.ShaderModule, error)

	// Release frees every cached module.
	Release()
}

type modules struct {
	mu     sync.Mutex
	device gpu.Device
	fsys   fs.FS
	cache  map[string]gpu.ShaderModule
}

var _ Modules = &modules{}

// NewModules creates a Modules provider over the given file system. The file
// system typically comes from an embed.FS holding the application's WGSL
// sources.
//
// Parameters:
//   - device: the device modules are compiled on
//   - fsys: the file system holding .wgsl sources
//
// Returns:
//   - Modules: the provider
func NewModules(device gpu.Device, fsys fs.FS) Modules {
	return &modules{
		device: device,
		fsys:   fsys,
		cache:  make(map[string]gpu.ShaderModule),
	}
}

func (m *modules) Vertex(name string) (gpu.ShaderModule, error) {
	return m.load(name + ".vert.wgsl")
}

func (m *modules) Fragment(name string) (gpu.ShaderModule, error) {
	return m.load(name + ".frag.wgsl")
}

func (m *modules) load(key string) (gpu.ShaderModule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mod, ok := m.cache[key]; ok {
		return mod, nil
	}

	source, err := fs.ReadFile(m.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader source %s: %w", key, err)
	}

	mod, err := m.device.CreateShaderModule(key, string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %s: %w", key, err)
	}

	m.cache[key] = mod
	return mod, nil
}

func (m *modules) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, mod := range m.cache {
		mod.Release()
		delete(m.cache, key)
	}
}
