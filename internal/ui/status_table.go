package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/img2zip/img2zip/internal/model"
)

// newStatusTable builds the three-column table (Status, Description, URL)
// that renders the live batch projection.
func (ui *RootUI) newStatusTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			return ui.rowCount(), ColumnCount
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			ui.updateStatusCell(id, obj)
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		obj.(*widget.Label).SetText(ui.headerText(id.Col))
	}

	table.SetColumnWidth(ColumnStatus, StatusColumnWidth)
	table.SetColumnWidth(ColumnDescription, DescriptionColumnWidth)
	table.SetColumnWidth(ColumnURL, URLColumnWidth)

	return table
}

// headerText returns the localized header for the given column.
func (ui *RootUI) headerText(col int) string {
	switch col {
	case ColumnStatus:
		return ui.localization.GetText(KeyHeaderStatus)
	case ColumnDescription:
		return ui.localization.GetText(KeyHeaderDesc)
	case ColumnURL:
		return ui.localization.GetText(KeyHeaderURL)
	default:
		return ""
	}
}

// updateStatusCell fills one table cell from the cached row snapshot.
func (ui *RootUI) updateStatusCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)

	row, ok := ui.rowAt(id.Row)
	if !ok {
		label.SetText("")
		return
	}

	switch id.Col {
	case ColumnStatus:
		label.SetText(row.Status.String())
	case ColumnDescription:
		label.SetText(row.Description)
	case ColumnURL:
		label.SetText(row.URL)
	}
}

// rowCount returns the number of cached projection rows.
func (ui *RootUI) rowCount() int {
	ui.rowsMutex.RLock()
	defer ui.rowsMutex.RUnlock()
	return len(ui.rows)
}

// rowAt returns the cached projection row at the given index.
func (ui *RootUI) rowAt(index int) (model.StatusRow, bool) {
	ui.rowsMutex.RLock()
	defer ui.rowsMutex.RUnlock()

	if index < 0 || index >= len(ui.rows) {
		return model.StatusRow{}, false
	}
	return ui.rows[index], true
}
