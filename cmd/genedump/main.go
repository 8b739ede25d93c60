// Genome inspection tool - decodes hex genome text into readable
// connections. Genomes come from arguments, or from stdin one per line when
// no arguments are given.
//
// Usage: go run ./cmd/genedump -internal 4 03810100 817F7FFF
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/gianluca-venturini/vita/brain"
	"github.com/gianluca-venturini/vita/genome"
)

func main() {
	internal := flag.Int("internal", 4, "Internal neuron count to decode against")
	flag.Parse()

	if *internal < 1 || *internal > 127 {
		fmt.Fprintf(os.Stderr, "genedump: internal neuron count must be in [1, 127], got %d\n", *internal)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				args = append(args, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "genedump: reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	top := genome.Topology{
		NumInput:    brain.NumInputs,
		NumInternal: *internal,
		NumOutput:   brain.NumOutputs,
	}

	for _, arg := range args {
		g, err := genome.ParseGenome(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "genedump: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("genome %s (%d genes, topology %d/%d/%d)\n",
			arg, len(g), top.NumInput, top.NumInternal, top.NumOutput)
		for i, gene := range g {
			src := gene.SourceNeuron(top)
			dst := gene.DestinationNeuron(top)
			fmt.Printf("  [%2d] %s  %s[%d] -> %s[%d]  weight %+.4f\n",
				i, gene.Text(), src.Layer, src.Index, dst.Layer, dst.Index, gene.ScaledWeight())
		}
	}
}
