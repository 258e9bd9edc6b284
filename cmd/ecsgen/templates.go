package main

import "text/template"

var zipperTemplate = template.Must(template.New("zipper").Parse(`// Code generated by ecsgen; DO NOT EDIT.

package ecs

import "iter"
{{range .}}
// Row{{.N}} is one step of a Zipper{{.N}}: the storage index and the element of
// every source at that index.
type Row{{.N}}[{{.TypeParams}}] struct {
	Index int
	{{.RowFields}}
}

// Zipper{{.N}} walks {{.N}} source{{.Plural}} in lockstep from index 0 up to the shortest
// source length, fixed when the zipper is built.
type Zipper{{.N}}[{{.TypeParams}}] struct {
	{{.ZipFields}}
	pos int
	end int
}

// Zip{{.N}} builds a Zipper{{.N}} positioned at the first index.
func Zip{{.N}}[{{.TypeParams}}]({{.ZipParams}}) *Zipper{{.N}}[{{.TypeArgs}}] {
	return &Zipper{{.N}}[{{.TypeArgs}}]{ {{- .ZipInits}}, end: zipBound({{.ZipLens}})}
}

// Len returns the number of steps from start to end.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) Len() int {
	return z.end
}

// Position returns the current position.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) Position() Position {
	return Position{step: z.pos}
}

// End returns the past-the-end position.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) End() Position {
	return Position{step: z.end}
}

// Done reports whether the zipper has reached its end.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) Done() bool {
	return z.pos >= z.end
}

// Get returns the current index and the element of every source at it.
// It panics when the zipper is done.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) Get() (int, {{.TypeArgs}}) {
	if z.Done() {
		panic("ecs: zipper advanced past end")
	}
	return z.pos, {{.ZipAts}}
}

// Advance moves one step forward. It is a no-op at the end.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) Advance() {
	if z.pos < z.end {
		z.pos++
	}
}

// All yields the remaining rows, advancing the zipper as it goes.
func (z *Zipper{{.N}}[{{.TypeArgs}}]) All() iter.Seq[Row{{.N}}[{{.TypeArgs}}]] {
	return func(yield func(Row{{.N}}[{{.TypeArgs}}]) bool) {
		for !z.Done() {
			index, {{.RowVars}} := z.Get()
			z.Advance()
			if !yield(Row{{.N}}[{{.TypeArgs}}]{Index: index, {{.RowInits}}}) {
				return
			}
		}
	}
}
{{end}}`))

var systemTemplate = template.Must(template.New("system").Parse(`// Code generated by ecsgen; DO NOT EDIT.

package ecs

import (
	"reflect"
	"time"
)
{{range .}}
// System{{.N}} is a behavior over the storages for {{.Names}}.
type System{{.N}}[{{.TypeParams}}] interface {
	Run(r *Registry, elapsed time.Duration, {{.StorageParams}}) error
}

// RegisterSystem{{.N}} registers sys, disabled. The storages for {{.Names}} are
// looked up on every run, so a system never sees a storage that has since
// been unregistered.
func RegisterSystem{{.N}}[{{.TypeParams}}](r *Registry, sys System{{.N}}[{{.TypeArgs}}]) {
	components := []reflect.Type{ {{- .StorageTypes -}} }
	r.registerSystem(sys, components, func(r *Registry, elapsed time.Duration) error {
{{.StorageFetches}}		return sys.Run(r, elapsed, {{.StorageArgs}})
	})
}
{{end}}`))
