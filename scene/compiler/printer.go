package compiler

import (
	"fmt"
	"io"

	"github.com/GreatAttractor/gpuart/scene"
)

// Print writes a textual decoding of compiled data to w, interpreting the
// buffer with the same layout rules as the traversal shader: a linear scan
// over node records from start to end. Returns an error if the buffer is
// truncated or contains an unknown primitive type tag.
func Print(data scene.Data, w io.Writer) error {
	c := scene.NewCursor(data)

	for c.More() {
		fmt.Fprintf(w, "Node at %d: ", c.Pos()/scene.RGBAElems)

		fmt.Fprintf(w, "[%g; %g; %g]", c.Float(), c.Float(), c.Float())
		c.Skip(1)
		fmt.Fprintf(w, "<->[%g; %g; %g], ", c.Float(), c.Float(), c.Float())
		c.Skip(1)

		flags := c.Uint()

		if flags&FlagIsLower != 0 {
			fmt.Fprint(w, "IS_LOWER ")
		}
		if flags&FlagIsRoot != 0 {
			if flags&FlagIsLower != 0 {
				fmt.Fprint(w, "| ")
			}
			fmt.Fprint(w, "ROOT ")
		}

		if flags&FlagLeaf != 0 {
			if flags&(FlagIsLower|FlagIsRoot) != 0 {
				fmt.Fprint(w, "| ")
			}
			fmt.Fprint(w, "LEAF, ")

			c.Skip(2) // unused lo/hi children address slots

			fmt.Fprintf(w, "parent at %d, ", c.Uint())

			numPrimitives := flags &^ FlagsMask
			if numPrimitives == 1 {
				fmt.Fprint(w, "1 primitive: ")
			} else {
				fmt.Fprintf(w, "%d primitives: ", numPrimitives)
			}

			for i := uint32(0); i < numPrimitives; i++ {
				p, err := scene.Decode(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s, ", p.Type(), p)
			}
			fmt.Fprintln(w)
		} else {
			fmt.Fprintf(w, "lo_child at %d, ", c.Uint())
			fmt.Fprintf(w, "hi_child at %d, ", c.Uint())
			fmt.Fprintf(w, "parent at %d\n", c.Uint())
		}

		if err := c.Err(); err != nil {
			return err
		}
	}

	return c.Err()
}
