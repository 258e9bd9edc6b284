package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{selected: map[string]bool{}}
}

// Render counts the entities holding every checked component type.
func (qd *QueryDebuggerComponent) Render(r *ecs.Registry) {
	defer imgui.End()
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		return
	}

	if stamp := stampOf(r); stamp.types != qd.stamp.types || qd.catalog.types == nil {
		qd.catalog, qd.stamp = catalogOf(r), stamp
	}

	if imgui.Button("Clear") {
		clear(qd.selected)
	}
	for _, name := range qd.catalog.names {
		checked := qd.selected[name]
		if imgui.Checkbox(name, &checked) {
			qd.selected[name] = checked
		}
	}
	imgui.Separator()

	required := qd.catalog.resolve(qd.selected)
	if len(required) == 0 {
		imgui.Text("Check one or more component types")
		return
	}

	matching := MatchingEntities(r, required)
	imgui.Text(fmt.Sprintf("%d matching entities", len(matching)))
	if len(matching) == 0 || !imgui.TreeNodeStr("Matches") {
		return
	}
	defer imgui.TreePop()

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("matches", 2, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Entity")
	imgui.TableSetupColumn("Holds")
	imgui.TableHeadersRow()
	for _, e := range matching {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", e))
		imgui.TableNextColumn()

		var held []string
		for _, t := range r.EntityComponents(e) {
			held = append(held, t.String())
		}
		imgui.Text(strings.Join(held, ", "))
	}
	imgui.EndTable()
}
