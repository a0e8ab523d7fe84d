package scene

import (
	"fmt"
	"math"

	"github.com/GreatAttractor/gpuart/types"
)

// Primitive type tags stored in compiled data. The traversal shader switches
// on the same values.
type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
	DiscPrimitive
	TrianglePrimitive
	ConePrimitive
)

func (t PrimitiveType) String() string {
	switch t {
	case SpherePrimitive:
		return "sphere"
	case DiscPrimitive:
		return "disc"
	case TrianglePrimitive:
		return "triangle"
	case ConePrimitive:
		return "cone"
	}
	return fmt.Sprintf("unknown(%d)", uint32(t))
}

// Primitive is implemented by all shape variants that can be partitioned by
// the tree builder and stored in compiled data. The encodePayload method is
// unexported which keeps the variant set closed; the compiled format knows
// only the four types above.
type Primitive interface {
	fmt.Stringer

	Type() PrimitiveType
	BBox() [2]types.Vec3
	Center() types.Vec3

	// Appends the shape parameters as whole RGBA quads.
	encodePayload(data *Data)
}

// Axis-aligned bounding box embedded by every variant. Calculated once on
// construction and never mutated.
type aabb struct {
	min, max types.Vec3
}

func (b aabb) BBox() [2]types.Vec3 {
	return [2]types.Vec3{b.min, b.max}
}

func (b aabb) Center() types.Vec3 {
	return b.min.Add(b.max).Mul(0.5)
}

// Encode appends the primitive's type tag quad followed by its payload quads.
func Encode(data *Data, p Primitive) {
	data.PushUint(uint32(p.Type()))
	data.PushFloat(RGBAPad, RGBAPad, RGBAPad)
	p.encodePayload(data)
}

// Decode reads back one primitive (type tag quad + payload quads) written by
// Encode, consuming exactly the same number of quads.
func Decode(c *Cursor) (Primitive, error) {
	ptype := PrimitiveType(c.Uint())
	c.Skip(3)

	var p Primitive
	switch ptype {
	case SpherePrimitive:
		p = decodeSphere(c)
	case DiscPrimitive:
		p = decodeDisc(c)
	case TrianglePrimitive:
		p = decodeTriangle(c)
	case ConePrimitive:
		p = decodeCone(c)
	default:
		return nil, fmt.Errorf("scene: unknown primitive type tag %d", uint32(ptype))
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Sphere ------------------------------------------------------------------

type Sphere struct {
	aabb

	Origin types.Vec3
	Radius float32
}

// NewSphere creates a sphere primitive.
func NewSphere(origin types.Vec3, radius float32) *Sphere {
	s := &Sphere{Origin: origin, Radius: radius}
	s.min = origin.Sub(types.XYZ(radius, radius, radius))
	s.max = origin.Add(types.XYZ(radius, radius, radius))
	return s
}

func (s *Sphere) Type() PrimitiveType {
	return SpherePrimitive
}

func (s *Sphere) encodePayload(data *Data) {
	data.PushVec3(s.Origin)
	data.PushFloat(s.Radius)
}

func decodeSphere(c *Cursor) *Sphere {
	origin := types.XYZ(c.Float(), c.Float(), c.Float())
	return NewSphere(origin, c.Float())
}

func (s *Sphere) String() string {
	return fmt.Sprintf("{ (%g, %g, %g), %g }", s.Origin[0], s.Origin[1], s.Origin[2], s.Radius)
}

// Disc --------------------------------------------------------------------

type Disc struct {
	aabb

	Origin types.Vec3
	Normal types.Vec3
	Radius float32
}

// NewDisc creates a disc primitive. The bounding box is the conservative one
// of a sphere with the same radius.
func NewDisc(origin, normal types.Vec3, radius float32) *Disc {
	d := &Disc{Origin: origin, Normal: normal, Radius: radius}
	d.min = origin.Sub(types.XYZ(radius, radius, radius))
	d.max = origin.Add(types.XYZ(radius, radius, radius))
	return d
}

func (d *Disc) Type() PrimitiveType {
	return DiscPrimitive
}

func (d *Disc) encodePayload(data *Data) {
	data.PushVec3(d.Origin)
	data.PushFloat(d.Radius)

	data.PushVec3(d.Normal)
	data.PushFloat(RGBAPad)
}

func decodeDisc(c *Cursor) *Disc {
	origin := types.XYZ(c.Float(), c.Float(), c.Float())
	radius := c.Float()
	normal := types.XYZ(c.Float(), c.Float(), c.Float())
	c.Skip(1)
	return NewDisc(origin, normal, radius)
}

func (d *Disc) String() string {
	return fmt.Sprintf("{ (%g, %g, %g), %g, (%g, %g, %g) }",
		d.Origin[0], d.Origin[1], d.Origin[2], d.Radius,
		d.Normal[0], d.Normal[1], d.Normal[2])
}

// Triangle ----------------------------------------------------------------

type Triangle struct {
	aabb

	Verts [3]types.Vec3
}

// NewTriangle creates a triangle primitive from its three vertices.
func NewTriangle(v0, v1, v2 types.Vec3) *Triangle {
	t := &Triangle{Verts: [3]types.Vec3{v0, v1, v2}}
	t.min = types.MinVec3(types.MinVec3(v0, v1), v2)
	t.max = types.MaxVec3(types.MaxVec3(v0, v1), v2)
	return t
}

func (t *Triangle) Type() PrimitiveType {
	return TrianglePrimitive
}

func (t *Triangle) encodePayload(data *Data) {
	for _, v := range t.Verts {
		data.PushVec3(v)
		data.PushFloat(RGBAPad)
	}
}

func decodeTriangle(c *Cursor) *Triangle {
	var verts [3]types.Vec3
	for i := range verts {
		verts[i] = types.XYZ(c.Float(), c.Float(), c.Float())
		c.Skip(1)
	}
	return NewTriangle(verts[0], verts[1], verts[2])
}

func (t *Triangle) String() string {
	return fmt.Sprintf("{ (%g, %g, %g), (%g, %g, %g), (%g, %g, %g) }",
		t.Verts[0][0], t.Verts[0][1], t.Verts[0][2],
		t.Verts[1][0], t.Verts[1][1], t.Verts[1][2],
		t.Verts[2][0], t.Verts[2][1], t.Verts[2][2])
}

// Cone --------------------------------------------------------------------

// Cone is a capped cone (or cylinder, when both radii are equal) spanned
// between two end centers. The trigonometric terms needed by the traversal
// shader are derived once at construction and stored in compiled data as-is
// so that the consumer never recomputes them.
type Cone struct {
	aabb

	Center1, Center2 types.Vec3
	Radius1, Radius2 float32

	// Unit axis (Center2-Center1) vector and its length.
	unitAxis types.Vec3
	axisLen  float32

	// Radius change per unit of axis length.
	widthCoeff float32

	// Cosine of the base angle; 0 for a cylinder, negative when the cone
	// widens from Center1 towards Center2.
	cosBase float32

	// Dot product of the unit axis and Center1.
	dotAxisC1 float32
}

// NewCone creates a cone primitive. Derived quantities are computed with
// float64 intermediates and rounded to float32 once.
func NewCone(center1, center2 types.Vec3, radius1, radius2 float32) *Cone {
	cn := &Cone{Center1: center1, Center2: center2, Radius1: radius1, Radius2: radius2}

	axis := [3]float64{
		float64(center2[0]) - float64(center1[0]),
		float64(center2[1]) - float64(center1[1]),
		float64(center2[2]) - float64(center1[2]),
	}
	axisLen := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	cn.axisLen = float32(axisLen)
	cn.unitAxis = types.XYZ(
		float32(axis[0]/axisLen),
		float32(axis[1]/axisLen),
		float32(axis[2]/axisLen),
	)
	cn.widthCoeff = (radius2 - radius1) / cn.axisLen

	switch {
	case math.Abs(float64(radius1)-float64(radius2)) < 1.0e-7:
		cn.cosBase = 0.0
	case radius1 > radius2:
		h := radius1 * cn.axisLen / (radius1 - radius2)
		cn.cosBase = float32(float64(radius1) / math.Sqrt(float64(h)*float64(h)+float64(radius1)*float64(radius1)))
	default:
		h := radius2 * cn.axisLen / (radius2 - radius1)
		cn.cosBase = float32(-float64(radius2) / math.Sqrt(float64(h)*float64(h)+float64(radius2)*float64(radius2)))
	}

	cn.dotAxisC1 = float32(axis[0]/axisLen*float64(center1[0]) +
		axis[1]/axisLen*float64(center1[1]) +
		axis[2]/axisLen*float64(center1[2]))

	cn.calcBBox()
	return cn
}

// The box is slightly bigger than necessary (as if the cone had
// hemispherical caps).
func (cn *Cone) calcBBox() {
	cn.min = types.MinVec3(
		cn.Center1.Sub(types.XYZ(cn.Radius1, cn.Radius1, cn.Radius1)),
		cn.Center2.Sub(types.XYZ(cn.Radius2, cn.Radius2, cn.Radius2)),
	)
	cn.max = types.MaxVec3(
		cn.Center1.Add(types.XYZ(cn.Radius1, cn.Radius1, cn.Radius1)),
		cn.Center2.Add(types.XYZ(cn.Radius2, cn.Radius2, cn.Radius2)),
	)
}

func (cn *Cone) Type() PrimitiveType {
	return ConePrimitive
}

func (cn *Cone) encodePayload(data *Data) {
	data.PushVec3(cn.Center1)
	data.PushFloat(cn.Radius1)

	data.PushVec3(cn.Center2)
	data.PushFloat(cn.Radius2)

	data.PushVec3(cn.unitAxis)
	data.PushFloat(cn.axisLen)

	data.PushFloat(cn.widthCoeff, cn.cosBase, cn.dotAxisC1, RGBAPad)
}

func decodeCone(c *Cursor) *Cone {
	cn := &Cone{}
	cn.Center1 = types.XYZ(c.Float(), c.Float(), c.Float())
	cn.Radius1 = c.Float()
	cn.Center2 = types.XYZ(c.Float(), c.Float(), c.Float())
	cn.Radius2 = c.Float()
	cn.unitAxis = types.XYZ(c.Float(), c.Float(), c.Float())
	cn.axisLen = c.Float()
	cn.widthCoeff = c.Float()
	cn.cosBase = c.Float()
	cn.dotAxisC1 = c.Float()
	c.Skip(1)
	cn.calcBBox()
	return cn
}

func (cn *Cone) String() string {
	return fmt.Sprintf("{ (%g, %g, %g), %g, (%g, %g, %g), %g, axis (%g, %g, %g), len %g, width %g, cosb %g, dotaxc1 %g }",
		cn.Center1[0], cn.Center1[1], cn.Center1[2], cn.Radius1,
		cn.Center2[0], cn.Center2[1], cn.Center2[2], cn.Radius2,
		cn.unitAxis[0], cn.unitAxis[1], cn.unitAxis[2], cn.axisLen,
		cn.widthCoeff, cn.cosBase, cn.dotAxisC1)
}
