package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m[i*4+j], "element (%d,%d)", i, j)
		}
	}
}

func TestOrthoCorners(t *testing.T) {
	m := make([]float32, 16)
	Ortho(m, 800, 600)

	transform := func(x, y float32) (float32, float32) {
		cx := m[0]*x + m[4]*y + m[12]
		cy := m[1]*x + m[5]*y + m[13]
		return cx, cy
	}

	// Top-left pixel maps to clip (-1, 1), bottom-right to (1, -1).
	x, y := transform(0, 0)
	assert.InDelta(t, -1.0, x, 1e-6)
	assert.InDelta(t, 1.0, y, 1e-6)

	x, y = transform(800, 600)
	assert.InDelta(t, 1.0, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32(nil)))

	data := []float32{1.0}
	b := SliceToBytes(data)
	assert.Len(t, b, 4)
	// 1.0f is 0x3f800000 little-endian
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b)
}

func TestStructToBytes(t *testing.T) {
	type constants struct {
		A [2]float32
		B [2]float32
	}
	c := constants{A: [2]float32{1, 0}, B: [2]float32{0, 1}}
	b := StructToBytes(&c)
	assert.Len(t, b, 16)
	assert.Equal(t, SizeOf[constants](), uint32(len(b)))
}
