package main

import (
	"os"

	"github.com/GreatAttractor/gpuart/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "gpuart"
	app.Usage = "construct bounding volume hierarchies and compile them into a GPU-friendly flat format"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile a primitive list into a flat tree buffer",
			Description: `
Parse primitive definitions from text files, partition them into a tree of
bounding boxes and compile the tree into a flat binary buffer that a GPU
traversal shader can walk without pointer chasing.

The compiled buffer is written next to each input file with a .bvh extension.`,
			ArgsUsage: "scene_file1.txt scene_file2.txt ...",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "max-levels",
					Value: 1024,
					Usage: "maximum number of tree levels",
				},
				cli.IntFlag{
					Name:  "min-leaf-primitives",
					Value: 2,
					Usage: "ranges with this many primitives or fewer become leaves",
				},
			},
			Action: cmd.CompileScene,
		},
		{
			Name:        "dump",
			Usage:       "print the decoded contents of a compiled tree buffer",
			Description: `Decode a compiled .bvh buffer and print every node and leaf primitive.`,
			ArgsUsage:   "scene_file.bvh",
			Action:      cmd.DumpScene,
		},
	}

	app.Run(os.Args)
}
