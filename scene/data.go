package scene

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	// Number of elements in an RGBA quad, the atomic unit of compiled data.
	RGBAElems = 4

	// Filler value for unused quad elements.
	RGBAPad float32 = 0.0
)

var (
	ErrTruncatedData  = errors.New("scene: compiled data truncated")
	ErrMisalignedData = errors.New("scene: compiled data length is not a multiple of the quad size")
)

// Data holds a compiled tree as a flat append-only sequence of RGBA quads.
// All elements are physically float32; slots that logically carry unsigned
// integers (flags, addresses, type tags) store their bit pattern via
// PushUint/SetUint and are read back with Cursor.Uint. A GPU consumer wraps
// the same buffer in an RGBA32F texture view and reinterprets integer slots
// with floatBitsToUint().
type Data []float32

// PushFloat appends float elements to the buffer.
func (d *Data) PushFloat(vals ...float32) {
	*d = append(*d, vals...)
}

// PushVec3 appends the three components of a vector.
func (d *Data) PushVec3(v [3]float32) {
	*d = append(*d, v[0], v[1], v[2])
}

// PushUint appends a single element holding the bit pattern of v.
func (d *Data) PushUint(v uint32) {
	*d = append(*d, math.Float32frombits(v))
}

// SetUint overwrites the element at the given index with the bit pattern of v.
func (d Data) SetUint(at int, v uint32) {
	d[at] = math.Float32frombits(v)
}

// Uint returns the element at the given index reinterpreted as an unsigned
// integer.
func (d Data) Uint(at int) uint32 {
	return math.Float32bits(d[at])
}

// Quads returns the number of complete RGBA quads in the buffer.
func (d Data) Quads() int {
	return len(d) / RGBAElems
}

// Bytes serializes the buffer to its little-endian wire form.
func (d Data) Bytes() []byte {
	out := make([]byte, 4*len(d))
	for i, v := range d {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// DataFromBytes parses a little-endian wire buffer produced by Bytes. The
// input length must be a whole number of quads.
func DataFromBytes(buf []byte) (Data, error) {
	if len(buf)%(4*RGBAElems) != 0 {
		return nil, ErrMisalignedData
	}
	data := make(Data, len(buf)/4)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return data, nil
}

// Cursor is a linear reader over compiled data. Reading past the end sets a
// sticky error and yields zero values from then on.
type Cursor struct {
	data Data
	pos  int
	err  error
}

func NewCursor(data Data) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current element index.
func (c *Cursor) Pos() int {
	return c.pos
}

// More reports whether any elements remain.
func (c *Cursor) More() bool {
	return c.err == nil && c.pos < len(c.data)
}

// Err returns the sticky read error, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Float consumes one element as a float.
func (c *Cursor) Float() float32 {
	if c.err != nil {
		return 0
	}
	if c.pos >= len(c.data) {
		c.err = ErrTruncatedData
		return 0
	}
	v := c.data[c.pos]
	c.pos++
	return v
}

// Uint consumes one element reinterpreted as an unsigned integer.
func (c *Cursor) Uint() uint32 {
	return math.Float32bits(c.Float())
}

// Skip consumes n elements without interpreting them.
func (c *Cursor) Skip(n int) {
	if c.err != nil {
		return
	}
	if c.pos+n > len(c.data) {
		c.err = ErrTruncatedData
		c.pos = len(c.data)
		return
	}
	c.pos += n
}
