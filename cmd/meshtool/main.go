// meshtool generates the meadow meshes and instance layouts without a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/plane"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "plane":
		err = cmdPlane(args, os.Stdout)
	case "blade":
		err = cmdBlade(args, os.Stdout)
	case "scatter":
		err = cmdScatter(args, os.Stdout)
	case "args":
		err = cmdArgs(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - procedural meadow mesh utility

Usage:
  meshtool <command> [options]

Commands:
  plane    [-config f] [-width w] [-height h] [-resolution r] [-obj out.obj]
  blade    [-config f] [-vertices n] [-height h] [-obj out.obj]
  scatter  [-config f] [-count n] [-seed s] [-limit n]
  args     [-config f]    Run the scene headless and print each draw's arguments

Examples:
  meshtool plane -resolution 4 -obj plane.obj
  meshtool blade -vertices 15 -obj blade.obj
  meshtool scatter -count 99 -limit 5
  meshtool args -config config.yaml`)
}

// loadScene reads scene parameters from path, or returns the defaults when
// path is empty.
func loadScene(path string) (scene.Params, error) {
	if path == "" {
		p := scene.DefaultParams()
		p.Normalize()
		return p, nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return scene.Params{}, err
	}
	return cfg.Scene, nil
}

func printMesh(w io.Writer, label string, m *geometry.Mesh) {
	fmt.Fprintf(w, "%s\n", label)
	fmt.Fprintf(w, "  vertices:  %d\n", m.VertexCount())
	fmt.Fprintf(w, "  indices:   %d\n", m.IndexCount())
	fmt.Fprintf(w, "  triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(w, "  bounds:    min %v max %v\n", m.Bounds.Min, m.Bounds.Max)
}

func writeOBJ(path string, m *geometry.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := geometry.WriteOBJ(f, m, name); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func cmdPlane(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("plane", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file to read plane parameters from")
	width := fs.Float64("width", -1, "Plane width (X)")
	height := fs.Float64("height", -1, "Plane height (Z)")
	resolution := fs.Int("resolution", 0, "Cells per side")
	objPath := fs.String("obj", "", "Write the mesh as Wavefront OBJ")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := loadScene(*configPath)
	if err != nil {
		return err
	}
	params := p.Plane.Params
	if *width >= 0 {
		params.Width = float32(*width)
	}
	if *height >= 0 {
		params.Height = float32(*height)
	}
	if *resolution != 0 {
		params.Resolution = *resolution
	}

	mesh := plane.GenerateParams(params)
	printMesh(out, fmt.Sprintf("plane %gx%g resolution %d", params.Width, params.Height, params.Resolution), mesh)

	if *objPath != "" {
		if err := writeOBJ(*objPath, mesh, "plane"); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", *objPath)
	}
	return nil
}

func cmdBlade(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("blade", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file to read blade parameters from")
	vertices := fs.Int("vertices", 0, "Blade vertex count (odd, at least 5)")
	height := fs.Float64("height", -1, "Blade height")
	objPath := fs.String("obj", "", "Write the mesh as Wavefront OBJ")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := loadScene(*configPath)
	if err != nil {
		return err
	}
	blade := p.Grass.Blade
	if *vertices != 0 {
		blade.VertexCount = *vertices
	}
	if *height >= 0 {
		blade.Height = float32(*height)
	}

	mesh := grass.BuildBlade(blade)
	printMesh(out, fmt.Sprintf("blade %d vertices", grass.NormalizeVertexCount(blade.VertexCount)), mesh)

	if *objPath != "" {
		if err := writeOBJ(*objPath, mesh, "blade"); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", *objPath)
	}
	return nil
}

func cmdScatter(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("scatter", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file to read grass and plane parameters from")
	count := fs.Int("count", -1, "Requested blade count")
	seed := fs.Int64("seed", 0, "Scatter seed")
	limit := fs.Int("limit", 10, "Placements to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := loadScene(*configPath)
	if err != nil {
		return err
	}
	g := p.Grass
	if *count >= 0 {
		g.Count = *count
	}
	if *seed != 0 {
		g.Seed = *seed
	}

	field := math.Vec2{X: p.Plane.Width, Y: p.Plane.Height}
	placements := scene.GrassPlacements(g, field)
	data := instance.Transforms(placements)

	fmt.Fprintf(out, "requested:  %d\n", g.Count)
	fmt.Fprintf(out, "side:       %d\n", instance.CellsPerAxis(g.Count))
	fmt.Fprintf(out, "instances:  %d\n", len(placements))
	fmt.Fprintf(out, "bytes:      %d\n", len(data)*instance.Size)
	for i, pl := range placements {
		if i >= *limit {
			break
		}
		fmt.Fprintf(out, "  [%d] pos (%.3f, %.3f, %.3f) y-scale %.3f\n",
			i, pl.Position.X, pl.Position.Y, pl.Position.Z, pl.Scale.Y)
	}
	return nil
}

func cmdArgs(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("args", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file to read scene parameters from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := loadScene(*configPath)
	if err != nil {
		return err
	}

	rec := renderer.NewRecorder()
	s := scene.New(p)
	if err := s.Setup(rec); err != nil {
		return err
	}
	defer s.Close()

	if err := s.Render(scene.FrameContext{ViewProj: math.Identity()}); err != nil {
		return err
	}

	for _, d := range rec.Draws {
		fmt.Fprintf(out, "%-8s index_count=%d instance_count=%d start_index=%d base_vertex=%d start_instance=%d\n",
			d.Call.Material.Name, d.Args.IndexCount(), d.Args.InstanceCount(), d.Args[2], d.Args[3], d.Args[4])
	}
	fmt.Fprintf(out, "draws: %d  buffers: %d  meshes: %d\n", len(rec.Draws), rec.LiveBuffers(), rec.LiveMeshes())
	return nil
}
