package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/pngshrink/pngshrink"
)

func main() {
	var config pngshrink.Config
	var outputPath string
	var filters string
	var quiet bool
	flag.BoolVar(&config.NoReduce, "no-reduce", false,
		"keep the original color model instead of dropping redundant channels")
	flag.BoolVar(&config.NoPalette, "no-palette", false,
		"never convert RGB images to a palette")
	flag.BoolVar(&config.Parallel, "parallel", false,
		"encode with every filter concurrently")
	flag.StringVar(&filters, "filters", "",
		"comma-separated filters to try (default: None,Sub,Up,Average,Paeth)")
	flag.StringVar(&outputPath, "o", "out.png", "output path")
	flag.BoolVar(&quiet, "quiet", false, "only print the final summary")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <input.png>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	flag.Parse()

	if len(flag.Args()) != 1 {
		flag.Usage()
	}
	inputPath := flag.Args()[0]

	if filters != "" {
		for _, name := range strings.Split(filters, ",") {
			f, err := pngshrink.ParseFilter(strings.TrimSpace(name))
			essentials.Must(err)
			config.Filters = append(config.Filters, f)
		}
	}
	if !quiet {
		config.Log = os.Stdout
	}

	inStats, err := os.Stat(inputPath)
	essentials.Must(err)
	essentials.Must(pngshrink.OptimizeFile(inputPath, outputPath, &config))
	outStats, err := os.Stat(outputPath)
	essentials.Must(err)

	fracReduction := float64(inStats.Size()-outStats.Size()) / float64(inStats.Size())
	fmt.Printf(
		"%s -> %s (%.1f%% reduction)",
		humanize.Bytes(uint64(inStats.Size())),
		humanize.Bytes(uint64(outStats.Size())),
		fracReduction*100,
	)
	fmt.Println()
}
