package shader

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/fredizzimo/vide/engine/renderer/gpu"
)

type stubModule struct {
	label    string
	source   string
	released bool
}

func (m *stubModule) Release() { m.released = true }

type stubDevice struct {
	gpu.Device

	compiled []string
	fail     bool
}

func (d *stubDevice) CreateShaderModule(label, source string) (gpu.ShaderModule, error) {
	if d.fail {
		return nil, errors.New("compilation failed")
	}
	d.compiled = append(d.compiled, label)
	return &stubModule{label: label, source: source}, nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"quad.vert.wgsl": &fstest.MapFile{Data: []byte("// vertex")},
		"quad.frag.wgsl": &fstest.MapFile{Data: []byte("// fragment")},
	}
}

func TestVertexAndFragmentUseDistinctSources(t *testing.T) {
	device := &stubDevice{}
	m := NewModules(device, testFS())

	vert, err := m.Vertex("quad")
	assert.NoError(t, err)
	assert.Equal(t, "// vertex", vert.(*stubModule).source)

	frag, err := m.Fragment("quad")
	assert.NoError(t, err)
	assert.Equal(t, "// fragment", frag.(*stubModule).source)

	assert.Equal(t, []string{"quad.vert.wgsl", "quad.frag.wgsl"}, device.compiled)
}

func TestModulesAreCached(t *testing.T) {
	device := &stubDevice{}
	m := NewModules(device, testFS())

	first, err := m.Vertex("quad")
	assert.NoError(t, err)
	second, err := m.Vertex("quad")
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, device.compiled, 1)
}

func TestMissingSource(t *testing.T) {
	device := &stubDevice{}
	m := NewModules(device, testFS())

	_, err := m.Vertex("missing")
	assert.Error(t, err)
	assert.Empty(t, device.compiled)
}

func TestCompilationFailureIsNotCached(t *testing.T) {
	device := &stubDevice{fail: true}
	m := NewModules(device, testFS())

	_, err := m.Fragment("quad")
	assert.Error(t, err)

	device.fail = false
	frag, err := m.Fragment("quad")
	assert.NoError(t, err)
	assert.NotNil(t, frag)
}

func TestReleaseFreesCachedModules(t *testing.T) {
	device := &stubDevice{}
	m := NewModules(device, testFS())

	vert, err := m.Vertex("quad")
	assert.NoError(t, err)

	m.Release()
	assert.True(t, vert.(*stubModule).released)

	_, err = m.Vertex("quad")
	assert.NoError(t, err)
	assert.Len(t, device.compiled, 2)
}
