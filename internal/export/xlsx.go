package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"roomscatter/internal/model"
)

var scheduleHeaders = []string{"Prop", "Width (tiles)", "Depth (tiles)", "Anchor X", "Anchor Z", "World X", "World Z", "Score"}

// ExportXLSX writes a placement schedule workbook: one sheet per room
// listing every placement, plus a summary sheet with room statistics
// and any unplaced props.
func ExportXLSX(path string, plan model.Plan, result model.ScatterResult) error {
	if len(result.Rooms) == 0 {
		return fmt.Errorf("no rooms to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := f.GetSheetName(0)
	if err := f.SetSheetName(summarySheet, "Summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	for i, room := range result.Rooms {
		sheetName := fmt.Sprintf("%d - %s", i+1, sanitizeSheetName(room.Room.Label))
		if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to create sheet for room %q: %w", room.Room.Label, err)
		}
		if err := writeRoomSheet(f, sheetName, room); err != nil {
			return err
		}
	}

	if err := writeSummarySheet(f, plan, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRoomSheet fills one room's sheet with its placement rows.
func writeRoomSheet(f *excelize.File, sheet string, room model.RoomResult) error {
	for col, header := range scheduleHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, p := range room.Placements {
		values := []interface{}{
			p.Prop.Label,
			p.Prop.Footprint.Width,
			p.Prop.Footprint.Depth,
			p.Anchor.X,
			p.Anchor.Z,
			p.World.X,
			p.World.Z,
			p.Score,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeSummarySheet fills the summary sheet with plan settings, per-room
// statistics, and the unplaced prop list.
func writeSummarySheet(f *excelize.File, plan model.Plan, result model.ScatterResult) error {
	rows := [][]interface{}{
		{"Plan", plan.Name},
		{"Default Profile", plan.Settings.DefaultProfile},
		{"Seed", plan.Settings.Seed},
		{"Props Placed", result.PlacedCount()},
		{"Unplaced Props", len(result.Unplaced)},
		{"Overall Density %", result.TotalDensity()},
		{},
		{"Room", "Size", "Props", "Used Cells", "Blocked Cells", "Total Cells", "Density %"},
	}

	for _, room := range result.Rooms {
		rows = append(rows, []interface{}{
			room.Room.Label,
			fmt.Sprintf("%d x %d", room.Room.Width, room.Room.Depth),
			len(room.Placements),
			room.UsedCells(),
			room.BlockedCells(),
			room.TotalCells(),
			room.Density(),
		})
	}

	if len(result.Unplaced) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Unplaced", "Width", "Depth"})
		for _, prop := range result.Unplaced {
			rows = append(rows, []interface{}{prop.Label, prop.Footprint.Width, prop.Footprint.Depth})
		}
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// sanitizeSheetName strips characters Excel forbids in sheet names and
// truncates to the 31-character limit.
func sanitizeSheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
	}
	if len(out) > 27 { // leave room for the "N - " prefix
		out = out[:27]
	}
	if len(out) == 0 {
		return "Room"
	}
	return string(out)
}
