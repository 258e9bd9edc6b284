package debugui

import (
	"reflect"
)

// field is an exported struct field the inspector can draw.
type field struct {
	name  string
	index int
	// indirect is set for pointer fields; kind is then the pointee's.
	indirect bool
	kind     reflect.Kind
}

// fieldCache memoizes the drawable fields of component types. Panels render
// on the scheduler's goroutine only, so it is not locked.
type fieldCache map[reflect.Type][]field

func (c fieldCache) of(t reflect.Type) []field {
	if fields, ok := c[t]; ok {
		return fields
	}

	var fields []field
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			f := field{name: sf.Name, index: i, kind: sf.Type.Kind()}
			if f.kind == reflect.Pointer {
				f.indirect, f.kind = true, sf.Type.Elem().Kind()
			}
			fields = append(fields, f)
		}
	}
	c[t] = fields
	return fields
}
