package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sparsecs/ecs"
)

func NewEntityBrowserComponent(pageSize int) EntityBrowserComponent {
	return EntityBrowserComponent{
		listing:  &entityListing{},
		pageSize: pageSize,
	}
}

// Render lists live entities with the components they hold. Clicking a
// component name narrows the list to its holders; clicking a row selects
// the entity for the inspector.
func (eb *EntityBrowserComponent) Render(r *ecs.Registry) {
	defer imgui.End()
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		return
	}

	eb.listing.refresh(r)

	imgui.InputTextWithHint("##search", "id or component", &eb.search, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.search, eb.holding, eb.page = "", "", 0
	}
	if eb.holding != "" {
		imgui.Text("Holding " + eb.holding)
	}

	rows := eb.listing.filter(eb.search, eb.holding)
	shown, current, pages := paginate(rows, eb.pageSize, eb.page)
	eb.page = current

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("entities", 3, flags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		if order, changed := sortRequest(); changed {
			eb.listing.sortBy(order)
		}
		for _, row := range shown {
			eb.renderRow(row)
		}
		imgui.EndTable()
	}

	if pages > 1 {
		if imgui.Button("<") {
			eb.page--
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("%d / %d", current+1, pages))
		imgui.SameLine()
		if imgui.Button(">") {
			eb.page++
		}
		imgui.SameLine()
	}
	imgui.Text(fmt.Sprintf("%d entities", len(rows)))
}

func (eb *EntityBrowserComponent) renderRow(row entityRow) {
	imgui.TableNextRow()

	imgui.TableNextColumn()
	label := fmt.Sprintf("%d", row.id)
	if imgui.SelectableBoolV(label, eb.selection && eb.selected == row.id, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
		eb.selected, eb.selection = row.id, true
	}

	imgui.TableNextColumn()
	for i, name := range row.components {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(fmt.Sprintf("%s##%d", name, row.id)) {
			eb.holding, eb.page = name, 0
		}
	}

	imgui.TableNextColumn()
	imgui.Text(fmt.Sprintf("%d", len(row.components)))
}

// GetSelectedEntity returns the entity last clicked in the table, if any.
func (eb *EntityBrowserComponent) GetSelectedEntity() (ecs.EntityId, bool) {
	return eb.selected, eb.selection
}

// sortRequest reads the sort specs of the current table and reports
// whether the user changed them.
func sortRequest() (tableSort, bool) {
	specs := imgui.TableGetSortSpecs()
	if specs == nil || !specs.SpecsDirty() || specs.SpecsCount() == 0 {
		return tableSort{}, false
	}
	spec := specs.Specs()
	specs.SetSpecsDirty(false)
	return tableSort{
		column:     int(spec.ColumnIndex()),
		descending: spec.SortDirection() == imgui.SortDirectionDescending,
	}, true
}
