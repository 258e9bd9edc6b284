package debugui

import (
	"github.com/plus3/sparsecs/ecs"
)

// Panel components. Each holds the state one window keeps between passes;
// use the New* constructors, the zero values are not ready for use.

type EntityBrowserComponent struct {
	listing   *entityListing
	selected  ecs.EntityId
	selection bool
	search    string
	holding   string
	pageSize  int
	page      int
}

type ComponentInspectorComponent struct {
	fields fieldCache
}

type SystemViewerComponent struct {
	order tableSort
}

type PerformanceStatsComponent struct {
	history *frameHistory
}

type QueryDebuggerComponent struct {
	selected map[string]bool
	catalog  componentCatalog
	stamp    registryStamp
}
