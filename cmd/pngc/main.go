// Command pngc compiles a declarative GPU-resource configuration file to a
// "PNGB" bytecode module.
//
// Usage:
//
//	pngc [options] <input>
//
// Examples:
//
//	pngc scene.pngcfg                  # compile, write scene.pngb
//	pngc -o out.pngb scene.pngcfg      # compile to a chosen output path
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/gogpu/pngc"
)

var (
	output      = flag.String("o", "", "output file (default: <input> with .pngb extension)")
	maxErrors   = flag.Int("max-errors", 0, "cap reported analysis errors (0 = report all)")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("pngc", version())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		ext := filepath.Ext(inputPath)
		outPath = strings.TrimSuffix(inputPath, ext) + ".pngb"
	}

	opts := pngc.DefaultOptions()
	opts.MaxErrors = *maxErrors

	out, err := pngc.CompileWithOptions(string(source), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Compile error:", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d bytes)\n", outPath, len(out))
}
