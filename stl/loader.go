package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	vm "local/vector_math"
	"log"
	"math"
	"os"
)

// Binary STL layout: an 80 byte header, a uint32 triangle count and one 50 byte
// record per triangle (normal, three vertices, uint16 attribute). All fields
// are little endian without padding.
const (
	headerSize   = 80
	countSize    = 4
	preambleSize = headerSize + countSize
	vec3Size     = 12
	recordSize   = 50
	attribOffset = vec3Size * 4

	// DefaultMaxTriangles bounds the buffers allocated when decoding a stream
	// of unknown size, 16M triangles are ~1.2 GiB of normals and vertices.
	DefaultMaxTriangles = 1 << 24
)

type Options struct {
	// MaxTriangles rejects files declaring more triangles with ErrAlloc. Zero
	// disables the limit.
	MaxTriangles uint32
}

// DefaultOptions are meant for Decode. Files opened by Import are bounded by
// their size instead and get no triangle limit.
func DefaultOptions() Options {
	return Options{MaxTriangles: DefaultMaxTriangles}
}

// Import reads the binary STL file at path without a triangle limit.
func Import(path string) (*Mesh, error) {
	return ImportWithOptions(path, Options{})
}

// ImportWithOptions reads the binary STL file at path. The declared triangle
// count is checked against the size of the file before any buffer is
// allocated, bytes following the last triangle are ignored.
func ImportWithOptions(path string, opts Options) (*Mesh, error) {
	log.Printf("Reading stl file %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	size := int64(-1)
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
	}

	m, err := decode(bufio.NewReader(f), size, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf(
		"Successfully read stl file, Header: '%s', Triangle Count: %d, Triangle memory size: %d KiB",
		m.Header(), m.TriangleCount(), m.TriangleCount()*recordSize/1024,
	)
	return m, nil
}

// Decode reads a binary STL stream from r. Unlike ImportWithOptions the total
// size is unknown, so only opts.MaxTriangles bounds the allocation.
func Decode(r io.Reader, opts Options) (*Mesh, error) {
	return decode(r, -1, opts)
}

// decode parses a complete stream of the given size (-1 if unknown). Nothing is
// returned besides the error once any field fails to validate.
func decode(r io.Reader, size int64, opts Options) (*Mesh, error) {
	var preamble [preambleSize]byte
	if n, err := io.ReadFull(r, preamble[:headerSize]); err != nil {
		return nil, fmt.Errorf("%w: header has %d of %d bytes", ErrTruncated, n, headerSize)
	}
	if n, err := io.ReadFull(r, preamble[headerSize:]); err != nil {
		return nil, fmt.Errorf("%w: triangle count has %d of %d bytes", ErrTruncated, n, countSize)
	}
	header := string(bytes.TrimRight(preamble[:headerSize], "\x00 "))
	count := binary.LittleEndian.Uint32(preamble[headerSize:])

	if err := checkCount(count, size, opts); err != nil {
		return nil, err
	}

	n := int(count)
	normals := make([]vm.Vec3, 3*n)
	vertices := make([]vm.Vec3, 3*n)
	bounds := vm.NewBox()

	var record [recordSize]byte
	for i := 0; i < n; i++ {
		if got, err := io.ReadFull(r, record[:]); err != nil {
			return nil, recordError(i, got)
		}

		normal := toVec3(record[:vec3Size])
		for j := 0; j < 3; j++ {
			offset := vec3Size * (j + 1)
			v := toVec3(record[offset : offset+vec3Size])
			idx := 3*i + j
			normals[idx] = normal
			vertices[idx] = v
			bounds.Extend(v)
		}

		if attr := binary.LittleEndian.Uint16(record[attribOffset:]); attr != 0 {
			return nil, fmt.Errorf("%w: triangle %d has attribute %#04x", ErrAttribute, i, attr)
		}
	}

	return newMesh(header, normals, vertices, bounds), nil
}

// checkCount rejects triangle counts that cannot be satisfied before the
// buffers for them get allocated. A count the source is too short for is
// reported as truncated even when it also exceeds the limit.
func checkCount(count uint32, size int64, opts Options) error {
	if size >= 0 {
		need := int64(preambleSize) + int64(count)*recordSize
		if need > size {
			return fmt.Errorf("%w: %d triangles need %d bytes, file has %d", ErrTruncated, count, need, size)
		}
	}
	if opts.MaxTriangles > 0 && count > opts.MaxTriangles {
		return fmt.Errorf("%w: %d triangles exceed the limit of %d", ErrAlloc, count, opts.MaxTriangles)
	}
	if uint64(count) > uint64(math.MaxInt/3) {
		return fmt.Errorf("%w: %d triangles cannot be addressed", ErrAlloc, count)
	}
	return nil
}

// recordError classifies a short read of triangle i by the field it stopped in.
func recordError(i int, got int) error {
	if got >= attribOffset {
		return fmt.Errorf("%w: %w: triangle %d attribute has %d of 2 bytes",
			ErrAttribute, ErrTruncated, i, got-attribOffset)
	}
	field := "normal"
	if got >= vec3Size {
		field = fmt.Sprintf("vertex %d", got/vec3Size-1)
	}
	return fmt.Errorf("%w: triangle %d %s has %d of %d bytes", ErrTruncated, i, field, got%vec3Size, vec3Size)
}

func toVec3(bytes []byte) vm.Vec3 {
	return vm.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	float := math.Float32frombits(bits)
	return float
}
