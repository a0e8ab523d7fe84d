package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GreatAttractor/gpuart/scene/compiler"
	"github.com/GreatAttractor/gpuart/scene/reader"
	"github.com/urfave/cli"
)

// CompileScene partitions the primitives from each input file into a tree of
// bounding boxes and compiles it into the flat binary format consumed by the
// traversal shader.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return fmt.Errorf("no input files specified")
	}

	maxLevels := ctx.Int("max-levels")
	minLeafPrimitives := ctx.Int("min-leaf-primitives")

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)

		primitives, err := reader.ReadPrimitivesFromFile(sceneFile)
		if err != nil {
			logger.Error(err)
			return err
		}

		logger.Noticef("constructing tree of %d primitives", len(primitives))
		start := time.Now()
		root, err := compiler.Build(primitives, maxLevels, minLeafPrimitives)
		if err != nil {
			logger.Error(err)
			return err
		}

		data, err := compiler.Compile(root)
		if err != nil {
			logger.Error(err)
			return err
		}
		logger.Noticef("compiled tree in %d ms", time.Since(start).Nanoseconds()/1e6)

		stats := compiler.GatherStats(root)
		stats.Quads = data.Quads()
		fmt.Print(stats.Table())

		outFile := replaceExt(sceneFile, ".bvh")
		if err = os.WriteFile(outFile, data.Bytes(), 0644); err != nil {
			logger.Error(err)
			return err
		}
		logger.Noticef("wrote compiled tree to %s", outFile)
	}

	return nil
}

func replaceExt(path, ext string) string {
	if dot := strings.LastIndex(path, "."); dot > strings.LastIndexByte(path, '/') {
		return path[:dot] + ext
	}
	return path + ext
}
