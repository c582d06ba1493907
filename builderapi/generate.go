package builderapi

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/martinemde/megabuilder/automaton"
)

// BuildMethod is the method final states declare to produce the result.
const BuildMethod = "Build"

// Defaults applied by Generate when the matching Options field is empty.
const (
	DefaultPackage = "builder"
	DefaultResult  = "Result"
)

var (
	// ErrInvalidSymbol reports a symbol that cannot be turned into a method name.
	ErrInvalidSymbol = errors.New("symbol is not a valid Go identifier")

	// ErrMethodConflict reports two symbols, or a symbol and Build, that map
	// to the same method name.
	ErrMethodConflict = errors.New("conflicting method names")
)

// Options configures Generate.
type Options struct {
	// Package is the package clause of the generated file.
	Package string

	// Result is the type Build returns, e.g. "Catalogue" or "model.Catalogue".
	// The builder interfaces are named after its last component.
	Result string

	// Imports are added to the import block, e.g. "example.com/app/model".
	Imports []string

	// Params maps a symbol to the parameter list of its method, e.g.
	// "name string, price int". Symbols without an entry take no arguments.
	Params map[string]string
}

// InterfaceName returns the interface name of the state with the given
// discovery index: base for the initial state, base followed by the index
// otherwise.
func InterfaceName(base string, index int) string {
	if index == 0 {
		return base
	}
	return base + strconv.Itoa(index)
}

// MethodName converts a symbol into an exported method name by upper-casing
// its first letter.
func MethodName(symbol string) (string, error) {
	r, size := utf8.DecodeRuneInString(symbol)
	name := string(unicode.ToUpper(r)) + symbol[size:]
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return name, nil
}

// Generate renders d as gofmt-formatted Go source declaring one interface per
// state. The output depends only on d and opts.
func Generate(d *automaton.DFA, opts Options) ([]byte, error) {
	if d == nil || d.Initial == nil {
		return nil, errors.New("builderapi: DFA has no initial state")
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("builderapi: invalid package name %q", opts.Package)
	}
	if opts.Result == "" {
		opts.Result = DefaultResult
	}
	base, err := baseName(opts.Result)
	if err != nil {
		return nil, err
	}

	methods, err := methodNames(d)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by megabuilder. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", opts.Package)
	if len(opts.Imports) > 0 {
		imports := slices.Clone(opts.Imports)
		slices.Sort(imports)
		buf.WriteString("\nimport (\n")
		for _, path := range slices.Compact(imports) {
			fmt.Fprintf(&buf, "\t%s\n", strconv.Quote(path))
		}
		buf.WriteString(")\n")
	}

	for _, s := range d.States {
		name := InterfaceName(base, s.ID)
		buf.WriteString("\n")
		if s == d.Initial {
			fmt.Fprintf(&buf, "// %s is the entry point of the builder.\n", name)
		}
		fmt.Fprintf(&buf, "type %s interface {\n", name)
		if s.IsFinal {
			fmt.Fprintf(&buf, "\t%s() %s\n", BuildMethod, opts.Result)
		}
		for _, t := range s.Transitions() {
			fmt.Fprintf(&buf, "\t%s(%s) %s\n", methods[t.Symbol], opts.Params[t.Symbol], InterfaceName(base, t.To.ID))
		}
		buf.WriteString("}\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("builderapi: formatting generated source: %w", err)
	}
	return src, nil
}

// baseName derives the interface base name from the result type, dropping
// any package qualifier and pointer or slice prefix.
func baseName(result string) (string, error) {
	name := strings.TrimLeft(result, "*[]")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("builderapi: invalid result type %q", result)
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:] + "Builder", nil
}

// methodNames maps every symbol of d to its method name and rejects
// collisions, including with BuildMethod.
func methodNames(d *automaton.DFA) (map[string]string, error) {
	methods := make(map[string]string)
	owners := map[string]string{BuildMethod: ""}
	for _, s := range d.States {
		for _, t := range s.Transitions() {
			if _, ok := methods[t.Symbol]; ok {
				continue
			}
			name, err := MethodName(t.Symbol)
			if err != nil {
				return nil, err
			}
			if owner, taken := owners[name]; taken {
				if owner == "" {
					return nil, fmt.Errorf("%w: symbol %q maps to the reserved %s method", ErrMethodConflict, t.Symbol, BuildMethod)
				}
				return nil, fmt.Errorf("%w: symbols %q and %q both map to %s", ErrMethodConflict, owner, t.Symbol, name)
			}
			owners[name] = t.Symbol
			methods[t.Symbol] = name
		}
	}
	return methods, nil
}
