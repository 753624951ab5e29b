package deliveries

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"printshop/models"
)

// NoteCode is the barcode printed on a delivery note.
func NoteCode(deliveryID int64) string {
	return fmt.Sprintf("E%08d", deliveryID)
}

func renderDeliveryNotePDF(d models.Delivery) ([]byte, error) {
	if len(d.Items) == 0 {
		return nil, fmt.Errorf("delivery %d has no items", d.ID)
	}
	code := NoteCode(d.ID)
	barcodePNG, err := renderCode128PNG(code, 1000, 200)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Remito "+code, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	margin := 15.0
	contentW := pageW - 2*margin

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW/2, 12, "3D.IEGO", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW/2, 12, tr("Remito de entrega"), "", 1, "R", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "delivery-barcode-" + code
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	pdf.ImageOptions(imageName, pageW-margin-70, pdf.GetY(), 70, 16, false, opt, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(pageW-margin-70, pdf.GetY()+16)
	pdf.CellFormat(70, 5, code, "", 1, "C", false, 0, "")

	customerName := "-"
	if d.Customer != nil && strings.TrimSpace(d.Customer.Name) != "" {
		customerName = d.Customer.Name
	}
	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(32, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(contentW-32, 7, tr(value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	field("Cliente:", customerName)
	field("Fecha:", d.Date.Format("02/01/2006"))
	if d.OrderNumber != "" {
		field("Pedido:", d.OrderNumber)
	}
	if d.Customer != nil && d.Customer.Address != "" {
		field("Dirección:", d.Customer.Address)
	}
	pdf.Ln(4)

	colPiece := contentW * 0.52
	colQty := contentW * 0.12
	colPrice := contentW * 0.18
	colSubtotal := contentW - colPiece - colQty - colPrice

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colPiece, 7, "Pieza", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Cant.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colPrice, 7, "Precio unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colSubtotal, 7, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	raw := decimal.Zero
	for _, it := range d.Items {
		piece := tr(it.Piece)
		size := fitFontSizeForWidth(pdf, "Helvetica", "", 10, 7, piece, colPiece-2)
		pdf.SetFont("Helvetica", "", size)
		pdf.CellFormat(colPiece, 7, piece, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(colQty, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 7, "$"+it.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colSubtotal, 7, "$"+it.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
		raw = raw.Add(it.Subtotal)
	}

	labelW := colPiece + colQty + colPrice
	pdf.CellFormat(labelW, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(colSubtotal, 7, "$"+raw.StringFixed(2), "", 1, "R", false, 0, "")
	if d.Discount.IsPositive() {
		pdf.CellFormat(labelW, 7, "Descuento", "", 0, "R", false, 0, "")
		pdf.CellFormat(colSubtotal, 7, "-$"+d.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 9, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(colSubtotal, 9, "$"+d.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if d.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Notas", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, tr(d.Notes), "", "L", false)
	}

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 6, "Firma: ____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, tr("Aclaración: ____________________"), "", 1, "R", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
