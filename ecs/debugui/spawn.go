package debugui

import (
	"github.com/plus3/sparsecs/ecs"
)

// RegisterDebugUIComponents registers every component this package defines.
func RegisterDebugUIComponents(r *ecs.Registry) {
	ecs.RegisterComponent[ImguiItem](r)
	ecs.RegisterComponent[EntityBrowserComponent](r)
	ecs.RegisterComponent[ComponentInspectorComponent](r)
	ecs.RegisterComponent[SystemViewerComponent](r)
	ecs.RegisterComponent[PerformanceStatsComponent](r)
	ecs.RegisterComponent[QueryDebuggerComponent](r)
}

// RegisterDebugUISystems registers and enables the ImGui and panel systems.
// The returned ImguiSystem exposes the input capture state.
func RegisterDebugUISystems(r *ecs.Registry) *ImguiSystem {
	imguiSystem := &ImguiSystem{}
	ecs.RegisterSystem1[ImguiItem](r, imguiSystem)
	ecs.RegisterSystem4[
		EntityBrowserComponent,
		ComponentInspectorComponent,
		SystemViewerComponent,
		PerformanceStatsComponent,
	](r, DebugUISystem{})
	ecs.RegisterSystem1[QueryDebuggerComponent](r, QueryDebuggerSystem{})

	ecs.EnableSystem[ImguiSystem](r)
	ecs.EnableSystem[DebugUISystem](r)
	ecs.EnableSystem[QueryDebuggerSystem](r)
	return imguiSystem
}

// SpawnDebugUI creates one entity holding every debug panel.
func SpawnDebugUI(r *ecs.Registry) (ecs.EntityId, error) {
	e := r.CreateEntity()
	if _, err := ecs.AddComponent(r, e, NewEntityBrowserComponent(100)); err != nil {
		return e, err
	}
	if _, err := ecs.AddComponent(r, e, NewComponentInspectorComponent()); err != nil {
		return e, err
	}
	if _, err := ecs.AddComponent(r, e, NewSystemViewerComponent()); err != nil {
		return e, err
	}
	if _, err := ecs.AddComponent(r, e, NewPerformanceStatsComponent(120)); err != nil {
		return e, err
	}
	if _, err := ecs.AddComponent(r, e, NewQueryDebuggerComponent()); err != nil {
		return e, err
	}
	return e, nil
}
