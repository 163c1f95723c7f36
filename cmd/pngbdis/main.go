// Command pngbdis disassembles a "PNGB" bytecode module to readable text.
//
// Usage:
//
//	pngbdis <input.pngb>
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/pngc/bytecode"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.pngb>\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	module, err := bytecode.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Decode error:", err)
		os.Exit(1)
	}

	text, err := bytecode.Disassemble(module)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Disassemble error:", err)
		os.Exit(1)
	}

	fmt.Print(text)
}
