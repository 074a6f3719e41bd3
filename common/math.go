// package common contains small helpers shared across the engine: column-major
// matrix math in the WebGPU convention and unsafe reinterpretation casts for
// GPU uploads.
package common

import (
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Ortho creates an orthographic projection matrix mapping the pixel rectangle
// (0,0)-(width,height) to WebGPU clip space, with the origin at the top-left
// and a [0, 1] depth range.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - width: viewport width in pixels
//   - height: viewport height in pixels
func Ortho(out []float32, width, height float32) {
	Identity(out)
	out[0] = 2.0 / width
	out[5] = -2.0 / height
	out[12] = -1.0
	out[13] = 1.0
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// SizeOf returns the in-memory size of T in bytes, for sizing GPU buffers and
// push constant ranges.
//
// Returns:
//   - uint32: the size of T in bytes
func SizeOf[T any]() uint32 {
	var zero T
	return uint32(unsafe.Sizeof(zero))
}
