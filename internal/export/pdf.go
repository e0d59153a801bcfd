// Package export renders scatter results to shareable artifacts: PDF
// floor plans, QR-coded placement manifests, and XLSX schedules.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"roomscatter/internal/model"
)

// propColor represents an RGB fill for a placed prop.
type propColor struct {
	R, G, B int
}

var propColors = []propColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a PDF floor plan of a scatter result. Each room is
// rendered on its own page with its grid, blocked zones, and placed
// props, followed by a summary page with overall statistics.
func ExportPDF(path string, plan model.Plan, result model.ScatterResult) error {
	if len(result.Rooms) == 0 {
		return fmt.Errorf("no rooms to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, room := range result.Rooms {
		pdf.AddPage()
		renderRoomPage(pdf, room, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, result)

	return pdf.OutputFileAndClose(path)
}

// renderRoomPage draws a single room's floor plan on the current page.
func renderRoomPage(pdf *fpdf.Fpdf, room model.RoomResult, roomNum int) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Room %d: %s (%d x %d tiles)", roomNum, room.Room.Label, room.Room.Width, room.Room.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Props: %d | Used: %d cells | Blocked: %d cells | Total: %d cells | Density: %.1f%%",
		len(room.Placements), room.UsedCells(), room.BlockedCells(), room.TotalCells(), room.Density())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the grid to fit the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / float64(room.Room.Width)
	scaleZ := drawHeight / float64(room.Room.Depth)
	scale := math.Min(scaleX, scaleZ)

	canvasW := float64(room.Room.Width) * scale
	canvasH := float64(room.Room.Depth) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Floor background
	pdf.SetFillColor(235, 228, 215)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawGridLines(pdf, room.Room, scale, offsetX, offsetY, canvasW, canvasH)
	drawBlockedZones(pdf, room.Room, scale, offsetX, offsetY)

	// Placed props
	for i, p := range room.Placements {
		col := propColors[i%len(propColors)]
		pw := float64(p.Prop.Footprint.CellsWide()) * scale
		ph := float64(p.Prop.Footprint.CellsDeep()) * scale
		px := offsetX + float64(p.Anchor.X)*scale
		py := offsetY + float64(p.Anchor.Z)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough to hold it
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Prop.Label
			dims := fmt.Sprintf("%gx%g", p.Prop.Footprint.Width, p.Prop.Footprint.Depth)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, room.Room, offsetX, offsetY, canvasW, canvasH)
	drawPropsLegend(pdf, room, offsetY+canvasH+5)
}

// drawGridLines renders faint tile boundaries inside the room rectangle.
func drawGridLines(pdf *fpdf.Fpdf, room model.RoomSpec, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetDrawColor(200, 195, 185)
	pdf.SetLineWidth(0.1)

	for x := 1; x < room.Width; x++ {
		gx := offsetX + float64(x)*scale
		pdf.Line(gx, offsetY, gx, offsetY+canvasH)
	}
	for z := 1; z < room.Depth; z++ {
		gz := offsetY + float64(z)*scale
		pdf.Line(offsetX, gz, offsetX+canvasW, gz)
	}
}

// drawBlockedZones renders the pre-reserved architecture zones with a
// red hatch so they read as keep-out areas.
func drawBlockedZones(pdf *fpdf.Fpdf, room model.RoomSpec, scale, offsetX, offsetY float64) {
	for _, zone := range room.Blocked {
		zx := offsetX + float64(zone.X)*scale
		zy := offsetY + float64(zone.Z)*scale
		zw := float64(zone.Width) * scale
		zh := float64(zone.Depth) * scale

		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")

		drawHatchPattern(pdf, zx, zy, zw, zh)

		if zw > 20 && zh > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(180, 0, 0)
			labelW := pdf.GetStringWidth("BLOCKED")
			pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
			pdf.CellFormat(labelW, 4, "BLOCKED", "", 0, "C", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds tile dimension labels outside the room rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, room model.RoomSpec, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the room)
	widthLabel := fmt.Sprintf("%d tiles", room.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Depth annotation (to the left, rotated)
	depthLabel := fmt.Sprintf("%d tiles", room.Depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPropsLegend renders a compact legend of placed props at the bottom of the page.
func drawPropsLegend(pdf *fpdf.Fpdf, room model.RoomResult, startY float64) {
	if len(room.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Props placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range room.Placements {
		col := propColors[i%len(propColors)]
		label := fmt.Sprintf("%s (%gx%g) @ %d,%d", p.Prop.Label, p.Prop.Footprint.Width, p.Prop.Footprint.Depth, p.Anchor.X, p.Anchor.Z)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan, result model.ScatterResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Scatter Summary: "+plan.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Rooms", fmt.Sprintf("%d", len(result.Rooms))},
		{"Props Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Props", fmt.Sprintf("%d", len(result.Unplaced))},
		{"Overall Density", fmt.Sprintf("%.1f%%", result.TotalDensity())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-room breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Room Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 45, 35, 40, 35}
	headers := []string{"Room", "Label", "Size (tiles)", "Props", "Used / Total", "Density"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, room := range result.Rooms {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			room.Room.Label,
			fmt.Sprintf("%d x %d", room.Room.Width, room.Room.Depth),
			fmt.Sprintf("%d", len(room.Placements)),
			fmt.Sprintf("%d / %d cells", room.UsedCells(), room.TotalCells()),
			fmt.Sprintf("%.1f%%", room.Density()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Unplaced props warning
	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Props", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, prop := range result.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %g x %g tiles", prop.Label, prop.Footprint.Width, prop.Footprint.Depth)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Scatter Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Default Profile", plan.Settings.DefaultProfile},
		{"Seed", fmt.Sprintf("%d", plan.Settings.Seed)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomScatter - Procedural Prop Placement", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size suited to the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
