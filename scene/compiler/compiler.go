package compiler

import (
	"time"

	"github.com/GreatAttractor/gpuart/log"
	"github.com/GreatAttractor/gpuart/scene"
)

const (
	// Node flags stored in the top bits of the info quad's first element.
	FlagLeaf    uint32 = 1 << 31
	FlagIsLower uint32 = 1 << 30
	FlagIsRoot  uint32 = 1 << 29

	FlagsMask = FlagLeaf | FlagIsLower | FlagIsRoot
)

// Node addresses are element indices stored in 32-bit slots.
const maxDataElems = 1 << 31

// Compile flattens a built tree into compiled data ready for upload as an
// RGBA32F texture buffer.
//
// Layout of a node in compiled data:
//
//	         node_BB (2 x RGBA quads)                       node_info (1 x RGBA quad)
//	{ xmin, ymin, zmin, PAD }, { xmax, ymax, zmax, PAD },  { flags|num_primitives, lo_addr, hi_addr, parent_addr }
//
// If (flags & FlagLeaf): followed by the leaf's primitive records written by
// scene.Encode. The ###_addr fields hold the element index (in RGBA quad
// units) of the lower/higher child and of the parent node. The first element
// of the info quad and the addresses are unsigned integers; the traversal
// shader reinterprets them via floatBitsToUint().
func Compile(root *BoundingBox) (scene.Data, error) {
	if root == nil {
		return nil, ErrMissingNode
	}

	logger := log.New("treeCompiler")
	start := time.Now()

	data := make(scene.Data, 0)
	if err := compileFrom(root, &data, 0, false, true); err != nil {
		return nil, err
	}

	logger.Debugf("tree compile time: %d ms, %d quads", time.Since(start).Nanoseconds()/1e6, data.Quads())
	return data, nil
}

// Compiles the tree starting at node and appends the results at the back of
// data. Child addresses become known only after each child subtree has been
// emitted, so their info quad slots are reserved first and overwritten
// afterwards; the parent address is known up front and is passed down.
func compileFrom(node *BoundingBox, data *scene.Data, parentAddr uint32, isLower, isRoot bool) error {
	if node == nil {
		return ErrMissingNode
	}
	if len(*data)+3*scene.RGBAElems > maxDataElems {
		return ErrAddressOverflow
	}

	nodeAddr := uint32(len(*data) / scene.RGBAElems)

	data.PushFloat(node.Min[0], node.Min[1], node.Min[2], scene.RGBAPad)
	data.PushFloat(node.Max[0], node.Max[1], node.Max[2], scene.RGBAPad)

	var flags uint32
	if isLower {
		flags |= FlagIsLower
	}
	if isRoot {
		flags |= FlagIsRoot
	}

	if node.IsLeaf() {
		flags |= FlagLeaf
		flags |= uint32(len(node.Primitives)) &^ FlagsMask
		data.PushUint(flags)

		// No children; the address slots are padding.
		data.PushFloat(scene.RGBAPad, scene.RGBAPad)
		data.PushUint(parentAddr)

		for _, p := range node.Primitives {
			scene.Encode(data, p)
		}
		return nil
	}

	data.PushUint(flags)

	lowerAddrLoc := len(*data)
	data.PushUint(0) // placeholder for lowerAddr

	higherAddrLoc := len(*data)
	data.PushUint(0) // placeholder for higherAddr

	data.PushUint(parentAddr)

	data.SetUint(lowerAddrLoc, uint32(len(*data)/scene.RGBAElems))
	if err := compileFrom(node.Lower, data, nodeAddr, true, false); err != nil {
		return err
	}

	data.SetUint(higherAddrLoc, uint32(len(*data)/scene.RGBAElems))
	return compileFrom(node.Higher, data, nodeAddr, false, false)
}
