package compiler

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TreeStats summarizes a built tree and its compiled form.
type TreeStats struct {
	Primitives int
	Nodes      int
	Leafs      int
	MaxDepth   int

	// Compiled data size; zero until the tree is compiled.
	Quads int
}

// GatherStats walks a built tree and collects its statistics. The quad count
// should be filled in from the compiled data by the caller.
func GatherStats(root *BoundingBox) TreeStats {
	var stats TreeStats
	gatherFrom(root, 0, &stats)
	return stats
}

func gatherFrom(node *BoundingBox, depth int, stats *TreeStats) {
	if node == nil {
		return
	}
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if node.IsLeaf() {
		stats.Leafs++
		stats.Primitives += len(node.Primitives)
		return
	}
	gatherFrom(node.Lower, depth+1, stats)
	gatherFrom(node.Higher, depth+1, stats)
}

// Build a tabular representation of the tree statistics.
func (s TreeStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Tree", "Value"})
	table.Append([]string{"Primitives", strconv.Itoa(s.Primitives)})
	table.Append([]string{"Nodes", strconv.Itoa(s.Nodes)})
	table.Append([]string{"Leafs", strconv.Itoa(s.Leafs)})
	table.Append([]string{"Max depth", strconv.Itoa(s.MaxDepth + 1)})
	table.Append([]string{"Quads", strconv.Itoa(s.Quads)})
	table.Append([]string{"Compiled size", fmtSize(4 * 4 * s.Quads)})
	table.Render()
	return buf.String()
}

// Format a byte count with the appropriate B/KiB/MiB/GiB unit.
func fmtSize(count int) string {
	switch {
	case count < 1<<10:
		return fmt.Sprintf("%d B", count)
	case count < 1<<20:
		return fmt.Sprintf("%.1f KiB", float32(count)/(1<<10))
	case count < 1<<30:
		return fmt.Sprintf("%.1f MiB", float32(count)/(1<<20))
	}
	return fmt.Sprintf("%.1f GiB", float32(count)/(1<<30))
}
