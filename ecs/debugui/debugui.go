// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Panels are ordinary components; the systems in this package render them each pass.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem until the end of
// the pass and records the current input capture state.
type ImguiSystem struct {
	InputState ImguiInputState
}

func (i *ImguiSystem) Run(r *ecs.Registry, _ time.Duration, items *ecs.SparseArray[ImguiItem]) error {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range items.Values() {
		if item.Render != nil {
			r.Commands().Defer(item.Render)
		}
	}
	return nil
}

// DebugUISystem renders the inspection panels of every entity that holds
// all four of them. The component inspector follows the entity browser's
// selection.
type DebugUISystem struct{}

func (DebugUISystem) Run(
	r *ecs.Registry,
	elapsed time.Duration,
	browsers *ecs.SparseArray[EntityBrowserComponent],
	inspectors *ecs.SparseArray[ComponentInspectorComponent],
	viewers *ecs.SparseArray[SystemViewerComponent],
	stats *ecs.SparseArray[PerformanceStatsComponent],
) error {
	panels := ecs.Zip4[
		*ecs.Slot[EntityBrowserComponent],
		*ecs.Slot[ComponentInspectorComponent],
		*ecs.Slot[SystemViewerComponent],
		*ecs.Slot[PerformanceStatsComponent],
	](browsers, inspectors, viewers, stats)

	for row := range panels.All() {
		browser, inspector, viewer, perf := row.V1.Get(), row.V2.Get(), row.V3.Get(), row.V4.Get()
		if browser == nil || inspector == nil || viewer == nil || perf == nil {
			continue
		}

		browser.Render(r)
		selected, ok := browser.GetSelectedEntity()
		inspector.Render(r, selected, ok)
		viewer.Render(r)
		perf.Render(r, elapsed)
	}
	return nil
}

// QueryDebuggerSystem renders every QueryDebuggerComponent.
type QueryDebuggerSystem struct{}

func (QueryDebuggerSystem) Run(r *ecs.Registry, _ time.Duration, debuggers *ecs.SparseArray[QueryDebuggerComponent]) error {
	for _, qd := range debuggers.Values() {
		qd.Render(r)
	}
	return nil
}
