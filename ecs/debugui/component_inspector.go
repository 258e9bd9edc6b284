package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{fields: fieldCache{}}
}

// Render shows and edits every component held by e. Edits are written
// straight through the storage pointer.
func (ci *ComponentInspectorComponent) Render(r *ecs.Registry, e ecs.EntityId, selected bool) {
	defer imgui.End()
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		return
	}

	switch {
	case !selected:
		imgui.Text("Select an entity in the browser")
		return
	case !r.IsAlive(e):
		imgui.Text(fmt.Sprintf("Entity %d was deleted", e))
		return
	}

	types := r.EntityComponents(e)
	imgui.Text(fmt.Sprintf("Entity %d, %d components", e, len(types)))
	imgui.Separator()

	for _, t := range types {
		ptr := r.ComponentValue(t, e)
		if ptr == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			ci.renderValue(t.String(), reflect.ValueOf(ptr).Elem())
			imgui.TreePop()
		}
	}
}

// renderValue draws a struct field by field and anything else as a single
// editable value.
func (ci *ComponentInspectorComponent) renderValue(id string, v reflect.Value) {
	if v.Kind() != reflect.Struct {
		ci.renderScalar(id, "value", v)
		return
	}

	for _, f := range ci.fields.of(v.Type()) {
		fv := v.Field(f.index)
		if f.indirect {
			if fv.IsNil() {
				imgui.Text(f.name + ": nil")
				continue
			}
			fv = fv.Elem()
		}
		if f.kind == reflect.Struct {
			if imgui.TreeNodeStr(f.name) {
				ci.renderValue(id+"."+f.name, fv)
				imgui.TreePop()
			}
			continue
		}
		ci.renderScalar(id+"."+f.name, f.name, fv)
	}
}

// renderScalar draws one value. v is addressable since it is reached
// through the component pointer, so edits land in the storage.
func (ci *ComponentInspectorComponent) renderScalar(id, name string, v reflect.Value) {
	widget := "##" + id

	switch v.Kind() {
	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name+widget, &b) && v.CanSet() {
			v.SetBool(b)
		}
		return
	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: %d items", name, v.Len()))
		return
	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %d entries", name, v.Len()))
		return
	}

	imgui.Text(name)
	imgui.SameLine()
	imgui.SetNextItemWidth(160)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		if imgui.InputInt(widget, &n) && v.CanSet() && !v.OverflowInt(int64(n)) {
			v.SetInt(int64(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		if imgui.InputInt(widget, &n) && n >= 0 && v.CanSet() && !v.OverflowUint(uint64(n)) {
			v.SetUint(uint64(n))
		}
	case reflect.Float32, reflect.Float64:
		x := float32(v.Float())
		if imgui.InputFloat(widget, &x) && v.CanSet() {
			v.SetFloat(float64(x))
		}
	case reflect.String:
		s := v.String()
		if imgui.InputTextWithHint(widget, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}
	default:
		if v.CanInterface() {
			imgui.Text(fmt.Sprintf("%v", v.Interface()))
		} else {
			imgui.Text("<" + v.Type().String() + ">")
		}
	}
}
