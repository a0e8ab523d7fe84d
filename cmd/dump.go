package cmd

import (
	"fmt"
	"os"

	"github.com/GreatAttractor/gpuart/scene"
	"github.com/GreatAttractor/gpuart/scene/compiler"
	"github.com/urfave/cli"
)

// DumpScene prints a textual decoding of a compiled tree file, interpreting
// it in the same manner as the traversal shader.
func DumpScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one compiled tree file")
	}

	buf, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		logger.Error(err)
		return err
	}

	data, err := scene.DataFromBytes(buf)
	if err != nil {
		logger.Error(err)
		return err
	}

	if err = compiler.Print(data, os.Stdout); err != nil {
		logger.Error(err)
		return err
	}

	return nil
}
