// gridtool is a CLI utility for navigation grids in text and GAT form.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/pkg/formats"
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
	case "info":
		err = cmdInfo(args)
	case "show", "cat":
		err = cmdShow(args)
	case "convert":
		err = cmdConvert(args)
	case "path":
		err = cmdPath(args)
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
	fmt.Println(`gridtool - navigation grid utility

Usage:
  gridtool <command> [options]

Commands:
  info <grid>                      Show dimensions and cell counts
  show <grid>                      Print the grid as text, top row first
  convert <in> <out>               Convert between text grids and .gat tables
  path <grid> <x1> <y1> <x2> <y2>  Find a path between two cells

Grids ending in .gat are read as binary altitude tables, anything else as text.

Examples:
  gridtool info prontera.gat
  gridtool convert prontera.gat prontera.txt
  gridtool path room.txt 0 0 9 4`)
}

func loadGrid(path string) (*formats.NavGrid, error) {
	if isGAT(path) {
		return formats.LoadGAT(path)
	}
	return formats.LoadNavGrid(path)
}

func isGAT(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gat")
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gridtool info <grid>")
	}

	grid, err := loadGrid(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Grid:  %s\n", args[0])
	fmt.Printf("Size:  %dx%d (%d cells)\n", grid.Width, grid.Height, len(grid.Cells))
	fmt.Println()
	fmt.Println("Cells by type:")

	// Sort by count
	type typeStat struct {
		cell  formats.CellType
		count int
	}
	var stats []typeStat
	for cell, count := range grid.CountByType() {
		stats = append(stats, typeStat{cell, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	for _, s := range stats {
		pct := float64(s.count) * 100 / float64(len(grid.Cells))
		fmt.Printf("  %-10s %6d  %5.1f%%\n", s.cell, s.count, pct)
	}
	return nil
}

func cmdShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gridtool show <grid>")
	}

	grid, err := loadGrid(args[0])
	if err != nil {
		return err
	}

	rows := grid.Rows()
	for y := len(rows) - 1; y >= 0; y-- {
		fmt.Println(rows[y])
	}
	return nil
}

func cmdConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite the output file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: gridtool convert [-f] <in> <out>")
	}
	in, out := fs.Arg(0), fs.Arg(1)

	grid, err := loadGrid(in)
	if err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s exists, use -f to overwrite", out)
		}
	}

	var data []byte
	if isGAT(out) {
		data = formats.EncodeGAT(grid)
	} else {
		data = []byte(strings.Join(grid.Rows(), "\n") + "\n")
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Converted: %s -> %s (%dx%d)\n", in, out, grid.Width, grid.Height)
	return nil
}

func cmdPath(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: gridtool path <grid> <x1> <y1> <x2> <y2>")
	}

	grid, err := loadGrid(args[0])
	if err != nil {
		return err
	}

	coords := make([]int, 4)
	for i, a := range args[1:5] {
		coords[i], err = strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q", a)
		}
	}
	start := world.Cell{coords[0], coords[1]}
	goal := world.Cell{coords[2], coords[3]}

	path := world.NewPathFinder(grid).FindPath(start, goal)
	if path == nil {
		return fmt.Errorf("no path from %v to %v", start, goal)
	}

	for _, c := range path {
		fmt.Printf("%d,%d\n", c[0], c[1])
	}
	fmt.Fprintf(os.Stderr, "\n(%d cells)\n", len(path))
	return nil
}
