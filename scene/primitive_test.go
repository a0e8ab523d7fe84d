package scene

import (
	"math"
	"testing"

	"github.com/GreatAttractor/gpuart/types"
)

func floatsEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < 1e-6
}

func TestSphereBBox(t *testing.T) {
	s := NewSphere(types.XYZ(1, -2, 3), 0.5)

	bbox := s.BBox()
	expMin := types.XYZ(0.5, -2.5, 2.5)
	expMax := types.XYZ(1.5, -1.5, 3.5)
	if bbox[0] != expMin || bbox[1] != expMax {
		t.Fatalf("expected bbox %v..%v; got %v..%v", expMin, expMax, bbox[0], bbox[1])
	}

	center := s.Center()
	if center != s.Origin {
		t.Fatalf("expected center %v; got %v", s.Origin, center)
	}
}

func TestDiscBBox(t *testing.T) {
	d := NewDisc(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), 6)

	bbox := d.BBox()
	if bbox[0] != types.XYZ(-6, -6, -6) || bbox[1] != types.XYZ(6, 6, 6) {
		t.Fatalf("expected the conservative spherical bbox; got %v..%v", bbox[0], bbox[1])
	}
}

func TestTriangleBBox(t *testing.T) {
	tr := NewTriangle(types.XYZ(1, -1, 0), types.XYZ(1, 1, 0), types.XYZ(1, 1, 1))

	bbox := tr.BBox()
	if bbox[0] != types.XYZ(1, -1, 0) || bbox[1] != types.XYZ(1, 1, 1) {
		t.Fatalf("expected bbox (1,-1,0)..(1,1,1); got %v..%v", bbox[0], bbox[1])
	}
}

func TestConeDerivedQuantities(t *testing.T) {
	// A cylinder: equal radii give a zero base-angle cosine.
	cyl := NewCone(types.XYZ(0, 0, 0), types.XYZ(0, 0, 2), 1, 1)
	if cyl.axisLen != 2 {
		t.Fatalf("expected axis length 2; got %g", cyl.axisLen)
	}
	if cyl.unitAxis != types.XYZ(0, 0, 1) {
		t.Fatalf("expected unit axis (0,0,1); got %v", cyl.unitAxis)
	}
	if cyl.widthCoeff != 0 {
		t.Fatalf("expected width coefficient 0; got %g", cyl.widthCoeff)
	}
	if cyl.cosBase != 0 {
		t.Fatalf("expected base-angle cosine 0; got %g", cyl.cosBase)
	}
	if cyl.dotAxisC1 != 0 {
		t.Fatalf("expected axis/center dot product 0; got %g", cyl.dotAxisC1)
	}

	// Narrowing cone: r1=2 > r2=1, axis length 1 gives h=2 and
	// cos = 2/sqrt(8).
	narrow := NewCone(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), 2, 1)
	if narrow.widthCoeff != -1 {
		t.Fatalf("expected width coefficient -1; got %g", narrow.widthCoeff)
	}
	exp := float32(2.0 / math.Sqrt(8.0))
	if !floatsEqual(narrow.cosBase, exp) {
		t.Fatalf("expected base-angle cosine %g; got %g", exp, narrow.cosBase)
	}

	// Widening cone: the base-angle cosine flips sign.
	wide := NewCone(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), 1, 2)
	if !floatsEqual(wide.cosBase, -exp) {
		t.Fatalf("expected base-angle cosine %g; got %g", -exp, wide.cosBase)
	}

	// Offset start center contributes to the axis/center dot product.
	off := NewCone(types.XYZ(0, 0, 3), types.XYZ(0, 0, 5), 1, 1)
	if off.dotAxisC1 != 3 {
		t.Fatalf("expected axis/center dot product 3; got %g", off.dotAxisC1)
	}
}

func TestConeBBox(t *testing.T) {
	cn := NewCone(types.XYZ(0.5, -0.7, 0), types.XYZ(0.5, -0.7, 0.35), 0.2, 0.2)

	bbox := cn.BBox()
	expMin := types.XYZ(0.3, -0.9, -0.2)
	expMax := types.XYZ(0.7, -0.5, 0.55)
	for i := 0; i < 3; i++ {
		if !floatsEqual(bbox[0][i], expMin[i]) || !floatsEqual(bbox[1][i], expMax[i]) {
			t.Fatalf("expected bbox %v..%v; got %v..%v", expMin, expMax, bbox[0], bbox[1])
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	cases := []struct {
		prim     Primitive
		expType  PrimitiveType
		expQuads int
	}{
		{NewSphere(types.XYZ(0, 0, 0.3), 0.3), SpherePrimitive, 2},
		{NewDisc(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), 6), DiscPrimitive, 3},
		{NewTriangle(types.XYZ(1, -1, 0), types.XYZ(1, 1, 0), types.XYZ(1, 1, 1)), TrianglePrimitive, 4},
		{NewCone(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), 1, 2), ConePrimitive, 5},
	}

	for _, tc := range cases {
		var data Data
		Encode(&data, tc.prim)

		if len(data)%RGBAElems != 0 {
			t.Fatalf("[%s] expected whole quads; got %d elements", tc.expType, len(data))
		}
		if data.Quads() != tc.expQuads {
			t.Fatalf("[%s] expected %d quads; got %d", tc.expType, tc.expQuads, data.Quads())
		}
		if got := PrimitiveType(data.Uint(0)); got != tc.expType {
			t.Fatalf("expected type tag %d; got %d", tc.expType, got)
		}
		for i := 1; i < RGBAElems; i++ {
			if data[i] != RGBAPad {
				t.Fatalf("[%s] expected tag quad padding at %d; got %g", tc.expType, i, data[i])
			}
		}
	}
}

func TestSphereEncoding(t *testing.T) {
	var data Data
	Encode(&data, NewSphere(types.XYZ(1, 2, 3), 0.5))

	exp := Data{1, 2, 3, 0.5}
	for i, v := range exp {
		if data[RGBAElems+i] != v {
			t.Fatalf("expected payload element %d to be %g; got %g", i, v, data[RGBAElems+i])
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	prims := []Primitive{
		NewSphere(types.XYZ(0, 0, 0.3), 0.3),
		NewDisc(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), 6),
		NewTriangle(types.XYZ(1, -1, 0), types.XYZ(1, 1, 0), types.XYZ(1, 1, 1)),
		NewCone(types.XYZ(0.5, -0.7, 0), types.XYZ(0.5, -0.7, 0.35), 0.2, 0.3),
	}

	var data Data
	for _, p := range prims {
		Encode(&data, p)
	}

	c := NewCursor(data)
	for i, orig := range prims {
		decoded, err := Decode(c)
		if err != nil {
			t.Fatal(err)
		}
		if decoded.Type() != orig.Type() {
			t.Fatalf("[prim %d] expected type %s; got %s", i, orig.Type(), decoded.Type())
		}

		// Re-encoding the decoded primitive must reproduce the original
		// payload bit-exactly.
		var expData, gotData Data
		Encode(&expData, orig)
		Encode(&gotData, decoded)
		if len(expData) != len(gotData) {
			t.Fatalf("[prim %d] expected %d elements; got %d", i, len(expData), len(gotData))
		}
		for j := range expData {
			if math.Float32bits(expData[j]) != math.Float32bits(gotData[j]) {
				t.Fatalf("[prim %d] expected payload element %d to round trip bit-exactly", i, j)
			}
		}
	}

	if c.More() {
		t.Fatalf("expected decoding to consume the whole buffer; %d elements left", len(data)-c.Pos())
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	var data Data
	data.PushUint(42)
	data.PushFloat(RGBAPad, RGBAPad, RGBAPad)

	if _, err := Decode(NewCursor(data)); err == nil {
		t.Fatal("expected an error for an unknown primitive type tag")
	}
}

func TestDecodeTruncated(t *testing.T) {
	var data Data
	Encode(&data, NewSphere(types.XYZ(0, 0, 0), 1))

	if _, err := Decode(NewCursor(data[:6])); err != ErrTruncatedData {
		t.Fatalf("expected ErrTruncatedData; got %v", err)
	}
}
