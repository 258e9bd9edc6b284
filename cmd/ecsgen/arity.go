package main

import (
	"fmt"
	"strings"
)

// letters names the type parameters; its length caps the arity.
const letters = "ABCDEFGH"

// Arity describes one expansion: the N type parameters A, B, ...
type Arity struct {
	N int
}

func (a Arity) Letters() []string {
	out := make([]string, a.N)
	for i := range a.N {
		out[i] = string(letters[i])
	}
	return out
}

// each formats every letter with format, which receives the letter, its
// lower-case form and its 1-based position, and joins the results.
func (a Arity) each(sep, format string) string {
	parts := make([]string, a.N)
	for i, l := range a.Letters() {
		parts[i] = strings.NewReplacer("{L}", l, "{l}", strings.ToLower(l), "{i}", fmt.Sprint(i+1)).Replace(format)
	}
	return strings.Join(parts, sep)
}

// TypeParams is the declaration list, e.g. "A, B any".
func (a Arity) TypeParams() string { return a.each(", ", "{L}") + " any" }

// TypeArgs is the instantiation list, e.g. "A, B".
func (a Arity) TypeArgs() string { return a.each(", ", "{L}") }

// Names reads the letters as prose, e.g. "A, B and C".
func (a Arity) Names() string {
	l := a.Letters()
	if a.N == 1 {
		return l[0]
	}
	return strings.Join(l[:a.N-1], ", ") + " and " + l[a.N-1]
}

func (a Arity) Plural() string {
	if a.N == 1 {
		return ""
	}
	return "s"
}

func (a Arity) ZipFields() string     { return a.each("\n\t", "{l} Indexable[{L}]") }
func (a Arity) ZipParams() string     { return a.each(", ", "{l} Indexable[{L}]") }
func (a Arity) ZipInits() string      { return a.each(", ", "{l}: {l}") }
func (a Arity) ZipLens() string       { return a.each(", ", "{l}.Len()") }
func (a Arity) ZipAts() string        { return a.each(", ", "z.{l}.At(z.pos)") }
func (a Arity) RowFields() string     { return a.each("\n\t", "V{i} {L}") }
func (a Arity) RowVars() string       { return a.each(", ", "v{i}") }
func (a Arity) RowInits() string      { return a.each(", ", "V{i}: v{i}") }
func (a Arity) StorageParams() string { return a.each(", ", "{l} *SparseArray[{L}]") }
func (a Arity) StorageTypes() string  { return a.each(", ", "reflect.TypeFor[{L}]()") }
func (a Arity) StorageArgs() string   { return a.each(", ", "{l}") }

// StorageFetches looks up every storage, returning on the first error.
func (a Arity) StorageFetches() string {
	return a.each("", "\t\t{l}, err := GetComponents[{L}](r)\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
}
