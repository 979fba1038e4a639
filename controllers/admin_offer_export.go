package controllers

import (
	"fmt"
	"strings"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

var offerReportHeaders = []string{"Offer ID", "Product ID", "Product", "Original", "Discount %", "Offer Price", "Ends", "Status"}

// ExportOffers downloads the offer report as xlsx (default) or pdf
func (h *Controller) ExportOffers(c *gin.Context) {
	utils.LogInfo("ExportOffers called")
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))

	list := surfaces.NewAdminListSurface(h.Offers, countdown.LangEN)
	list.SetClock(h.now)
	rows, err := list.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	stamp := h.now().Format("20060102_1504")

	switch format {
	case "xlsx":
		h.writeOffersExcel(c, rows, stamp)
	case "pdf":
		h.writeOffersPDF(c, rows, stamp)
	default:
		utils.BadRequest(c, "Invalid format. Use xlsx or pdf.", nil)
	}
}

func (h *Controller) writeOffersExcel(c *gin.Context, rows []surfaces.AdminRow, stamp string) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Offers")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("SODFAA - Offers Report")
	sheet.AddRow().AddCell().SetString("Generated: " + h.now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, title := range offerReportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(title)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.ID)
		row.AddCell().SetString(r.ProductID)
		row.AddCell().SetString(r.ProductName)
		row.AddCell().SetFloat(r.OriginalPrice)
		row.AddCell().SetInt(r.Discount)
		row.AddCell().SetFloat(r.DiscountedPrice)
		row.AddCell().SetString(r.EndTimeRaw)
		row.AddCell().SetString(string(r.Status))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=offers_%s.xlsx", stamp))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Generated Excel offer report with %d rows", len(rows))
}

func (h *Controller) writeOffersPDF(c *gin.Context, rows []surfaces.AdminRow, stamp string) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// core fonts only cover cp1252; other glyphs print as '?'
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "SODFAA - Offers Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Generated: "+h.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	colWidths := []float64{55, 45, 50, 22, 22, 25, 35, 22}
	pdf.SetFont("Arial", "B", 10)
	for i, title := range offerReportHeaders {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, r := range rows {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, r.ID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, r.ProductID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, tr(r.ProductName), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, surfaces.FormatPrice(r.OriginalPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%d", r.Discount), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, surfaces.FormatPrice(r.DiscountedPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, r.EndTime.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, string(r.Status), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=offers_%s.pdf", stamp))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate PDF", err.Error())
		return
	}
	utils.LogInfo("Generated PDF offer report with %d rows", len(rows))
}
