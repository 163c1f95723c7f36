// Package pngc compiles a declarative GPU-resource configuration source
// file into a "PNGB"-magic bytecode module.
//
// The package provides a simple, high-level API for compilation as well as
// lower-level access to individual compilation stages.
//
// Example usage:
//
//	out, err := pngc.Compile(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For access to intermediate stages (e.g. to inspect the AST or analysis
// errors before emission), use Parse/Analyze/Emit directly.
package pngc

import (
	"fmt"

	"github.com/gogpu/pngc/analyzer"
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/bytecode"
	"github.com/gogpu/pngc/emitter"
	"github.com/gogpu/pngc/parser"
	"github.com/gogpu/pngc/token"
)

// CompileOptions configures compilation.
type CompileOptions struct {
	// MaxErrors caps how many analysis errors CompileWithOptions reports
	// before giving up; 0 means report every collected error.
	MaxErrors int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{MaxErrors: 0}
}

// Compile compiles source to a "PNGB" bytecode buffer using default
// options. This is the simplest way to compile a file; for more control
// use CompileWithOptions or the individual Parse/Analyze/Emit functions.
func Compile(source string) ([]byte, error) {
	return CompileWithOptions(source, DefaultOptions())
}

// CompileWithOptions compiles source to a "PNGB" bytecode buffer with
// custom options.
//
// The compilation pipeline is:
//  1. Parse source to an AST.
//  2. Analyze the AST (declaration collection, reference resolution,
//     cycle detection, shader dedup, uniform resolution).
//  3. Emit a bytecode.Module from the analyzed AST.
//  4. Encode the module to its wire format.
func CompileWithOptions(source string, opts CompileOptions) ([]byte, error) {
	tree, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	analysis := Analyze(tree)
	if analysis.HasErrors() {
		return nil, fmt.Errorf("analysis failed: %w", firstError(analysis, opts.MaxErrors))
	}

	module, err := Emit(tree, analysis)
	if err != nil {
		return nil, fmt.Errorf("emit error: %w", err)
	}

	return module.Encode(), nil
}

// firstError formats up to max collected analysis errors (0 means all) into
// a single error, since CompileWithOptions can only return one.
func firstError(analysis *analyzer.Analysis, max int) error {
	n := len(analysis.Errors)
	if max > 0 && max < n {
		n = max
	}
	msg := analysis.Errors[0].Error()
	for _, e := range analysis.Errors[1:n] {
		msg += "; " + e.Error()
	}
	if rest := len(analysis.Errors) - n; rest > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, rest)
	}
	return fmt.Errorf("%s", msg)
}

// Parse lexes and parses source into an AST.
//
// This is the first stage of compilation. The AST represents the
// declarative structure of the source file but carries no semantic
// information — names are not yet resolved and constants are not yet
// folded.
func Parse(source string) (*ast.Ast, error) {
	src := token.NewSource([]byte(source))
	return parser.Parse(src)
}

// Analyze runs every semantic pass over tree: declaration collection,
// required-property checks, reference resolution (explicit and bare),
// import-cycle detection, shader-source dedup, and uniform resolution.
//
// The returned Analysis may carry collected errors; check HasErrors before
// passing it to Emit.
func Analyze(tree *ast.Ast) *analyzer.Analysis {
	return analyzer.Analyze(tree)
}

// Emit lowers an analyzed AST to a bytecode.Module. It refuses to run over
// an Analysis that still carries errors.
func Emit(tree *ast.Ast, analysis *analyzer.Analysis) (*bytecode.Module, error) {
	return emitter.Emit(tree, analysis)
}
