package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	history := newFrameHistory(historyFrames)
	return PerformanceStatsComponent{history: &history}
}

// Render plots the elapsed time of recent passes next to the registry
// counters and the occupancy of every storage.
func (ps *PerformanceStatsComponent) Render(r *ecs.Registry, elapsed time.Duration) {
	defer imgui.End()
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		return
	}

	ps.history.push(float32(elapsed.Seconds() * 1000))
	stats := r.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d live, %d ids issued, %d free", stats.EntityCount, stats.IssuedCount, stats.FreeCount))
	imgui.Text(fmt.Sprintf("Systems: %d, %d enabled", stats.SystemCount, stats.EnabledSystemCount))
	imgui.Text(fmt.Sprintf("Queued commands: %d", stats.PendingCommands))

	if avg := ps.history.average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Pass interval: %.2f ms avg, %.0f per second", avg, 1000/avg))
	}
	if samples := ps.history.ordered(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##passes", &samples[0], int32(len(samples)))
	}

	if !imgui.TreeNodeStr(fmt.Sprintf("Storages (%d)", stats.ComponentCount)) {
		return
	}
	defer imgui.TreePop()

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("storages", 4, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Component")
	imgui.TableSetupColumn("Slots")
	imgui.TableSetupColumn("Present")
	imgui.TableSetupColumn("Occupancy")
	imgui.TableHeadersRow()
	for _, info := range stats.Components {
		imgui.TableNextRow()
		for _, cell := range []string{info.Name, fmt.Sprint(info.Len), fmt.Sprint(info.Count), occupancy(info)} {
			imgui.TableNextColumn()
			imgui.Text(cell)
		}
	}
	imgui.EndTable()
}
