// lineart is a CLI utility for inspecting reference models: it reports
// surface statistics, extracts sharp edge line art, and exports outline
// shells without opening the viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"refsketch/pkg/formats"
	"refsketch/pkg/lineart"
	"refsketch/pkg/mesh"
	"refsketch/pkg/outline"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "edges":
		cmdEdges(args)
	case "shell":
		cmdShell(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lineart - reference model inspection utility

Usage:
  lineart <command> [options]

Commands:
  info <model.obj>                Show mesh and edge statistics
  edges <model.obj> [options]     Print sharp edge segments
  shell <model.obj> [options]     Export the outline shell as OBJ

Options:
  -low <deg>        lower dihedral angle bound (default 45)
  -high <deg>       upper dihedral angle bound (default 135)
  -thickness <t>    shell offset distance (default 0.02)
  -o <file>         output file (default stdout)

Examples:
  lineart info bust.obj
  lineart edges bust.obj -low 30 -high 150
  lineart shell bust.obj -thickness 0.05 -o bust_shell.obj`)
}

func loadMesh(path string) *mesh.Mesh {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := formats.ParseOBJ(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing %s: %v\n", path, err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lineart info <model.obj>")
		os.Exit(1)
	}

	m := loadMesh(args[0])

	adj, err := lineart.BuildAdjacency(m)
	nonManifold := errors.Is(err, lineart.ErrNonManifoldEdge)
	if err != nil && !nonManifold {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	boundary := 0
	interior := 0
	for _, opp := range adj {
		if opp.Count >= 2 {
			interior++
		} else {
			boundary++
		}
	}

	sharp := lineart.SharpEdges(adj, lineart.DefaultLowAngle, lineart.DefaultHighAngle)

	fmt.Printf("model:          %s\n", args[0])
	fmt.Printf("vertices:       %d\n", m.VertexCount())
	fmt.Printf("triangles:      %d\n", m.TriangleCount())
	fmt.Printf("edges:          %d\n", len(adj))
	fmt.Printf("  interior:     %d\n", interior)
	fmt.Printf("  boundary:     %d\n", boundary)
	fmt.Printf("sharp edges:    %d (at the default angle range)\n", len(sharp))
	if nonManifold {
		fmt.Printf("warning:        %v\n", err)
	}
}

func cmdEdges(args []string) {
	fs := flag.NewFlagSet("edges", flag.ExitOnError)
	low := fs.Float64("low", 45, "lower dihedral angle bound, degrees")
	high := fs.Float64("high", 135, "upper dihedral angle bound, degrees")
	out := fs.String("o", "", "output file (default stdout)")

	path, rest := splitPath(args, "lineart edges <model.obj> [options]")
	fs.Parse(rest)

	m := loadMesh(path)

	segments, err := lineart.SharpEdgeLines(m,
		float32(*low*math.Pi/180), float32(*high*math.Pi/180))
	if err != nil && !errors.Is(err, lineart.ErrNonManifoldEdge) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	for _, s := range segments {
		fmt.Fprintf(w, "%g %g %g  %g %g %g\n", s.A.X, s.A.Y, s.A.Z, s.B.X, s.B.Y, s.B.Z)
	}
	fmt.Fprintf(os.Stderr, "%d segments\n", len(segments))
}

func cmdShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	thickness := fs.Float64("thickness", outline.DefaultThickness, "shell offset distance")
	out := fs.String("o", "", "output file (default stdout)")

	path, rest := splitPath(args, "lineart shell <model.obj> [options]")
	fs.Parse(rest)

	m := loadMesh(path)

	shell, err := outline.GenerateOutlineMesh(m, float32(*thickness))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := formats.EncodeOBJ(shell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
		return
	}
	os.Stdout.Write(data)
}

// splitPath takes the model path from the front of args, leaving flags.
func splitPath(args []string, usage string) (string, []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return args[0], args[1:]
}
