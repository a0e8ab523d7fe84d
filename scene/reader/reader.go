// Package reader parses primitive lists from their text representation.
//
// The format is line-oriented; empty lines and lines starting with '#' are
// ignored. Recognized entries:
//
//	sphere x y z [r]
//	disc cx cy cz nx ny nz r
//	triangle x0 y0 z0 x1 y1 z1 x2 y2 z2
//	cone x1 y1 z1 x2 y2 z2 r1 r2
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GreatAttractor/gpuart/log"
	"github.com/GreatAttractor/gpuart/scene"
	"github.com/GreatAttractor/gpuart/types"
)

// Radius used for sphere entries that omit one.
const defaultSphereRadius float32 = 4.0

type primitiveReader struct {
	logger log.Logger

	primitives []scene.Primitive
}

// ReadPrimitivesFromFile parses a primitive list from a text file.
func ReadPrimitivesFromFile(path string) ([]scene.Primitive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := &primitiveReader{logger: log.New("primitiveReader")}
	r.logger.Noticef("parsing primitives from %s", path)

	start := time.Now()
	if err = r.parse(f, path); err != nil {
		return nil, err
	}
	r.logger.Noticef("parsed %d primitives in %d ms", len(r.primitives), time.Since(start).Nanoseconds()/1e6)

	return r.primitives, nil
}

// ReadPrimitives parses a primitive list from a text stream.
func ReadPrimitives(rd io.Reader) ([]scene.Primitive, error) {
	r := &primitiveReader{logger: log.New("primitiveReader")}
	if err := r.parse(rd, ""); err != nil {
		return nil, err
	}
	return r.primitives, nil
}

func (r *primitiveReader) parse(rd io.Reader, file string) error {
	scanner := bufio.NewScanner(rd)

	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		token := fields[0]
		args, err := parseFloats(fields[1:])
		if err != nil {
			return emitError(file, lineNum, "%v", err)
		}

		switch token {
		case "sphere":
			switch len(args) {
			case 3:
				r.primitives = append(r.primitives, scene.NewSphere(vec3(args), defaultSphereRadius))
			case 4:
				r.primitives = append(r.primitives, scene.NewSphere(vec3(args), args[3]))
			default:
				return emitError(file, lineNum, "sphere requires 3 or 4 values; got %d", len(args))
			}
		case "disc":
			if len(args) != 7 {
				return emitError(file, lineNum, "disc requires 7 values; got %d", len(args))
			}
			r.primitives = append(r.primitives, scene.NewDisc(vec3(args), vec3(args[3:]), args[6]))
		case "triangle":
			if len(args) != 9 {
				return emitError(file, lineNum, "triangle requires 9 values; got %d", len(args))
			}
			r.primitives = append(r.primitives, scene.NewTriangle(vec3(args), vec3(args[3:]), vec3(args[6:])))
		case "cone":
			if len(args) != 8 {
				return emitError(file, lineNum, "cone requires 8 values; got %d", len(args))
			}
			r.primitives = append(r.primitives, scene.NewCone(vec3(args), vec3(args[3:]), args[6], args[7]))
		default:
			return emitError(file, lineNum, "unsupported entry: %s", token)
		}
	}

	return scanner.Err()
}

func parseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", field)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func vec3(args []float32) types.Vec3 {
	return types.XYZ(args[0], args[1], args[2])
}

// Generate an error message prefixed with the file location.
func emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	if file == "" {
		return fmt.Errorf("[line %d] %s", line, msg)
	}
	return fmt.Errorf("[%s: %d] %s", file, line, msg)
}
