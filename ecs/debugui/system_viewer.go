package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

// NewSystemViewerComponent sorts by average duration, slowest first, until
// the user picks another column.
func NewSystemViewerComponent() SystemViewerComponent {
	return SystemViewerComponent{order: tableSort{column: 4, descending: true}}
}

// Render lists registered systems with their timings. The checkbox in each
// row moves a system in or out of scheduled passes.
func (sv *SystemViewerComponent) Render(r *ecs.Registry) {
	defer imgui.End()
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		return
	}

	stats := r.SchedulerStats()
	imgui.Text(fmt.Sprintf("%d systems, %d enabled, last elapsed %s", stats.SystemCount, stats.EnabledCount, stats.LastElapsed))

	var slowest time.Duration
	for _, sys := range stats.Systems {
		slowest = max(slowest, sys.AvgDuration)
	}

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("systems", 5, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	for _, column := range []string{"System", "Components", "Enabled", "Runs", "Avg"} {
		imgui.TableSetupColumn(column)
	}
	imgui.TableHeadersRow()

	if order, changed := sortRequest(); changed {
		sv.order = order
	}
	sortSystems(stats.Systems, sv.order)

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(strings.Join(sys.Components, ", "))

		imgui.TableNextColumn()
		enabled := sys.Enabled
		if imgui.Checkbox("##"+sys.Type.String(), &enabled) {
			r.SetSystemEnabled(sys.Type, enabled)
		}

		imgui.TableNextColumn()
		if sys.ErrorCount > 0 {
			imgui.TextColored(imgui.NewVec4(1, 0.4, 0.3, 1), fmt.Sprintf("%d (%d failed)", sys.ExecutionCount, sys.ErrorCount))
		} else {
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		}

		imgui.TableNextColumn()
		var fraction float32
		if slowest > 0 {
			fraction = float32(sys.AvgDuration) / float32(slowest)
		}
		imgui.ProgressBarV(fraction, imgui.NewVec2(-1, 0), sys.AvgDuration.String())
	}
	imgui.EndTable()
}
