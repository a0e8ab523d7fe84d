package compiler

import (
	"math"
	"sort"
	"time"

	"github.com/GreatAttractor/gpuart/log"
	"github.com/GreatAttractor/gpuart/scene"
	"github.com/GreatAttractor/gpuart/types"
)

// BoundingBox is one node of a built tree. A node is either a leaf (holding
// the primitives partitioned into it, no children) or internal (exactly two
// children, no primitives).
type BoundingBox struct {
	Min, Max types.Vec3

	Lower, Higher *BoundingBox

	Primitives []scene.Primitive
}

// IsLeaf reports whether the node holds primitives directly.
func (n *BoundingBox) IsLeaf() bool {
	return n.Lower == nil
}

type buildStats struct {
	partitionedItems int
	nodes            int
	leafs            int
	maxDepth         int
}

type treeBuilder struct {
	logger log.Logger

	maxLevels         int
	minLeafPrimitives int

	stats buildStats
}

// Build partitions the primitive list into a tree of bounding boxes. The
// order of elements in the list may change. Subdivision stops when a range
// holds minLeafPrimitives or fewer items, or when the tree reaches maxLevels
// levels; leftover ranges become leaves as-is.
func Build(primitives []scene.Primitive, maxLevels, minLeafPrimitives int) (*BoundingBox, error) {
	if maxLevels < 1 {
		return nil, ErrInvalidMaxLevels
	}
	if minLeafPrimitives < 1 {
		return nil, ErrInvalidMinPrimitives
	}

	builder := &treeBuilder{
		logger:            log.New("treeBuilder"),
		maxLevels:         maxLevels,
		minLeafPrimitives: minLeafPrimitives,
	}

	start := time.Now()
	root := &BoundingBox{}
	builder.subdivide(root, primitives, 0, len(primitives), 0)
	builder.logger.Debugf(
		"tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		builder.stats.maxDepth, builder.stats.nodes, builder.stats.leafs,
	)

	return root, nil
}

// Partition the primitives with indices in [from, to) along the longest
// spanned axis.
func (b *treeBuilder) subdivide(node *BoundingBox, primitives []scene.Primitive, from, to, level int) {
	b.stats.nodes++
	if level > b.stats.maxDepth {
		b.stats.maxDepth = level
	}

	// Bounding box of all primitives in the range
	min := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := from; i < to; i++ {
		bbox := primitives[i].BBox()
		min = types.MinVec3(min, bbox[0])
		max = types.MaxVec3(max, bbox[1])
	}
	node.Min = min
	node.Max = max

	if to-from <= b.minLeafPrimitives || level == b.maxLevels-1 {
		node.Primitives = append(node.Primitives, primitives[from:to]...)
		b.stats.leafs++
		b.stats.partitionedItems += to - from
		return
	}

	// Pick the largest-extent axis; ties resolve in x, y, z order.
	side := max.Sub(min)
	axis := 2
	if side[0] >= side[1] && side[0] >= side[2] {
		axis = 0
	} else if side[1] >= side[0] && side[1] >= side[2] {
		axis = 1
	}

	// Sort the range by the position of the primitives' centers, then split
	// at the first primitive whose center lies past the middle of the range's
	// bounding box.
	sort.Slice(primitives[from:to], func(i, j int) bool {
		return primitives[from+i].Center()[axis] < primitives[from+j].Center()[axis]
	})

	middle := min[axis] + 0.5*side[axis]
	splitIndex := from
	for splitIndex < to && primitives[splitIndex].Center()[axis] <= middle {
		splitIndex++
	}

	// Avoid an infinite recursion when a dominating bounding box always gets
	// sorted last and splitIndex would point at it in every subsequent call.
	if to-from > 2 {
		if splitIndex == from {
			splitIndex++
		} else if splitIndex == to {
			splitIndex--
		}
	}

	node.Lower = &BoundingBox{}
	node.Higher = &BoundingBox{}

	b.subdivide(node.Lower, primitives, from, splitIndex, level+1)
	b.subdivide(node.Higher, primitives, splitIndex, to, level+1)
}
