package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"roomscatter/internal/model"
)

// ManifestEntry holds the data encoded into each placement card's QR
// code. Scanning a card gives a level builder everything needed to drop
// the prop at its exact spot, plus the seed to reproduce the layout.
type ManifestEntry struct {
	PropLabel string  `json:"label"`
	Width     float64 `json:"width_tiles"`
	Depth     float64 `json:"depth_tiles"`
	RoomIndex int     `json:"room"`
	RoomLabel string  `json:"room_label"`
	AnchorX   int     `json:"anchor_x"`
	AnchorZ   int     `json:"anchor_z"`
	WorldX    float64 `json:"world_x"`
	WorldZ    float64 `json:"world_z"`
	PlanName  string  `json:"plan"`
	Seed      int64   `json:"seed"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per US Letter page).
const (
	cardPageWidth  = 215.9
	cardPageHeight = 279.4
	cardMarginTop  = 12.7
	cardMarginLeft = 4.8
	cardWidth      = 66.7
	cardHeight     = 25.4
	cardCols       = 3
	cardRows       = 10
	cardsPerPage   = cardCols * cardRows
	qrSize         = 20.0
	cardPadding    = 2.0
)

// ExportManifest generates a PDF of QR-coded placement cards for every
// placed prop. Each card carries the prop name, footprint, position,
// and a QR code encoding the full entry as JSON.
func ExportManifest(path string, plan model.Plan, result model.ScatterResult) error {
	entries := CollectManifestEntries(plan, result)
	if len(entries) == 0 {
		return fmt.Errorf("no placements to generate a manifest for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, entry := range entries {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % cardsPerPage
		col := posOnPage % cardCols
		row := posOnPage / cardCols

		x := cardMarginLeft + float64(col)*cardWidth
		y := cardMarginTop + float64(row)*cardHeight

		if err := renderCard(pdf, x, y, i, entry); err != nil {
			return fmt.Errorf("failed to render card for %q: %w", entry.PropLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single placement card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, idx int, entry ManifestEntry) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest entry: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_card_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + cardWidth - qrSize - cardPadding
	qrY := y + (cardHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + cardPadding
	textW := cardWidth - qrSize - 3*cardPadding

	// Prop label (bold, truncated if too long)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)

	propLabel := entry.PropLabel
	if pdf.GetStringWidth(propLabel) > textW {
		for len(propLabel) > 0 && pdf.GetStringWidth(propLabel+"...") > textW {
			propLabel = propLabel[:len(propLabel)-1]
		}
		propLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, propLabel, "", 1, "L", false, 0, "")

	// Footprint
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+cardPadding+5)
	dims := fmt.Sprintf("%g x %g tiles", entry.Width, entry.Depth)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Room and anchor
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+cardPadding+9)
	roomInfo := fmt.Sprintf("%s @ (%d, %d)", entry.RoomLabel, entry.AnchorX, entry.AnchorZ)
	pdf.CellFormat(textW, 3, roomInfo, "", 1, "L", false, 0, "")

	// World position
	pdf.SetXY(textX, y+cardPadding+12.5)
	worldInfo := fmt.Sprintf("world (%.2f, %.2f)", entry.WorldX, entry.WorldZ)
	pdf.CellFormat(textW, 3, worldInfo, "", 1, "L", false, 0, "")

	// Seed for layout reproduction
	pdf.SetXY(textX, y+cardPadding+16)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.SetTextColor(150, 100, 0)
	pdf.CellFormat(textW, 3, fmt.Sprintf("seed %d", entry.Seed), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectManifestEntries flattens a scatter result into manifest entries,
// one per placed prop instance.
func CollectManifestEntries(plan model.Plan, result model.ScatterResult) []ManifestEntry {
	var entries []ManifestEntry
	for roomIdx, room := range result.Rooms {
		for _, p := range room.Placements {
			entries = append(entries, ManifestEntry{
				PropLabel: p.Prop.Label,
				Width:     p.Prop.Footprint.Width,
				Depth:     p.Prop.Footprint.Depth,
				RoomIndex: roomIdx + 1,
				RoomLabel: room.Room.Label,
				AnchorX:   p.Anchor.X,
				AnchorZ:   p.Anchor.Z,
				WorldX:    p.World.X,
				WorldZ:    p.World.Z,
				PlanName:  plan.Name,
				Seed:      plan.Settings.Seed,
			})
		}
	}
	return entries
}
