// Package scaffold walks Java source trees and writes JUnit test
// skeletons for public methods that have no tests yet.
package scaffold

import "regexp"

// Method is one public method discovered in a source file.
type Method struct {
	Name    string `json:"name"`
	RawArgs string `json:"raw_args"`
}

// Declaration is what an extractor found in one source file.
type Declaration struct {
	Package string   `json:"package"`
	Methods []Method `json:"methods"`
}

// Extractor pulls package and public-method declarations out of raw
// source text. Implementations are best-effort; the generator only
// needs names good enough to seed skeletons.
type Extractor interface {
	Extract(src []byte) Declaration
}

var (
	packageRe = regexp.MustCompile(`package\s+([\w.]+);`)
	methodRe  = regexp.MustCompile(`public\s+(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\(([^)]*)\)`)
)

// RegexExtractor matches a bounded subset of Java: single-line
// signatures of the form "public [static] ReturnType name(args)".
// Multi-line signatures and nested generics in the return type can be
// missed, and annotations inside argument lists can over-match; that
// imprecision is accepted rather than building a real parser.
type RegexExtractor struct{}

func (RegexExtractor) Extract(src []byte) Declaration {
	var d Declaration
	if m := packageRe.FindSubmatch(src); m != nil {
		d.Package = string(m[1])
	}
	for _, m := range methodRe.FindAllSubmatch(src, -1) {
		d.Methods = append(d.Methods, Method{Name: string(m[1]), RawArgs: string(m[2])})
	}
	return d
}
