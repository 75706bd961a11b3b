package config

import (
	"bytes"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	vm "local/vector_math"
	"os"
	"stl_viewer/stl"
)

// EnvPath names the environment variable overriding DefaultPath.
const (
	EnvPath     = "STL_VIEWER_CONFIG"
	DefaultPath = "stl_viewer.yaml"
)

type Config struct {
	Importer Importer `yaml:"importer"`
	Framing  Framing  `yaml:"framing"`
}

type Importer struct {
	// MaxTriangles caps a single import, 0 disables the cap. Files are
	// always bounded by their size, so the default is no cap.
	MaxTriangles uint32 `yaml:"max_triangles"`
}

// Framing places a camera relative to a mesh's bounding sphere. Factors are
// multiples of the sphere radius.
type Framing struct {
	Fov        float32 `yaml:"fov"` // vertical, in degree
	NearFactor float32 `yaml:"near_factor"`
	FarFactor  float32 `yaml:"far_factor"`
	EyeOffset  Vector  `yaml:"eye_offset"`
}

// Vector is a Vec3 read from YAML either as a list `[x, y, z]` or as a map
// `{x: .., y: .., z: ..}`. Axes missing from the map keep their current value.
type Vector vm.Vec3

func (v *Vector) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var xyz []float32
		if err := n.Decode(&xyz); err != nil {
			return err
		}
		if len(xyz) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", n.Line, len(xyz))
		}
		*v = Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	case yaml.MappingNode:
		m := struct {
			X float32 `yaml:"x"`
			Y float32 `yaml:"y"`
			Z float32 `yaml:"z"`
		}{v.X, v.Y, v.Z}
		if err := n.Decode(&m); err != nil {
			return err
		}
		*v = Vector{X: m.X, Y: m.Y, Z: m.Z}
	default:
		return fmt.Errorf("line %d: vector must be a list or a map", n.Line)
	}
	return nil
}

func (v Vector) Vec3() vm.Vec3 {
	return vm.Vec3(v)
}

func Default() Config {
	return Config{
		Importer: Importer{
			MaxTriangles: 0,
		},
		Framing: Framing{
			Fov:        45,
			NearFactor: 0.1,
			FarFactor:  10,
			EyeOffset:  Vector{X: -3.5, Y: -3.5, Z: 2},
		},
	}
}

// Parse overlays the YAML document in data on top of Default. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOptional behaves like Load but returns Default when path does not exist.
func LoadOptional(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Path returns the config location, $STL_VIEWER_CONFIG if set.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func (c Config) Validate() error {
	f := c.Framing
	switch {
	case f.Fov <= 0 || f.Fov >= 180:
		return fmt.Errorf("framing fov %g must be within (0, 180)", f.Fov)
	case f.NearFactor <= 0:
		return fmt.Errorf("framing near_factor %g must be positive", f.NearFactor)
	case f.FarFactor <= f.NearFactor:
		return fmt.Errorf("framing far_factor %g must exceed near_factor %g", f.FarFactor, f.NearFactor)
	case f.EyeOffset == (Vector{}):
		return errors.New("framing eye_offset must not be zero")
	}
	return nil
}

func (c Config) ImportOptions() stl.Options {
	return stl.Options{MaxTriangles: c.Importer.MaxTriangles}
}
