package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"stl_viewer/config"
	"stl_viewer/model"
	"stl_viewer/stl"
)

const PROGRAM_NAME = "stl_viewer"
const WINDOW_WIDTH, WINDOW_HEIGHT int32 = 1280, 720

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Printf("Starting %s", PROGRAM_NAME)
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func main() {
	if len(os.Args) != 2 {
		log.Printf("usage: %s [file.stl]", PROGRAM_NAME)
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		log.Printf("%s failed: %s", PROGRAM_NAME, err)
		os.Exit(1)
	}
}

// run imports the file at path and reports what a viewer would need to draw it.
func run(path string) error {
	cfg, err := config.LoadOptional(config.Path())
	if err != nil {
		return err
	}

	mesh, err := stl.ImportWithOptions(path, cfg.ImportOptions())
	if err != nil {
		return err
	}
	m := model.NewModel(mesh, filepath.Base(path))
	defer m.Release()

	bounds := mesh.Bounds()
	log.Printf("Model %s: %d triangles, %d vertices", m.Name, mesh.TriangleCount(), m.VertexCount())
	log.Printf("Bounds: min %v, max %v, size %v", bounds.Min, bounds.Max, bounds.Size())
	log.Printf("Bounding sphere: center %v, radius %f", mesh.Center(), mesh.Radius())
	log.Printf("Vertex buffer: %d bytes, normal buffer: %d bytes", m.GetVBufferSize(), m.GetNBufferSize())

	cam := model.NewFramingCamera(mesh.Center(), mesh.Radius(), cfg.Framing)
	log.Printf(
		"Camera: eye %v, target %v, up %v, fov %.1f, near %f, far %f",
		cam.Pos, cam.Target, cam.Up, cam.Fov, cam.Near, cam.Far,
	)
	log.Printf("MVP for %dx%d: %v", WINDOW_WIDTH, WINDOW_HEIGHT, cam.GetMVP(float32(WINDOW_WIDTH)/float32(WINDOW_HEIGHT)))
	return nil
}
