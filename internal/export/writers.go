package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func writeCSV(rows []attendance.AttendanceResponse) ([]byte, error) {
	var buf bytes.Buffer
	// BOM so spreadsheet tools detect UTF-8 names.
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(record(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(title string, rows []attendance.AttendanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(sheetName, "A1", title)
	_ = f.MergeCell(sheetName, "A1", "I1")
	_ = f.SetCellStyle(sheetName, "A1", "I1", titleStyle)

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A3", &headerRow); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetName, "A3", "I3", headerStyle)

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		values := record(r)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		if r.HoursWorked != nil {
			row[6] = *r.HoursWorked
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 14)
	_ = f.SetColWidth(sheetName, "C", "D", 22)
	_ = f.SetColWidth(sheetName, "E", "G", 12)
	_ = f.SetColWidth(sheetName, "H", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var pdfColumnWidths = []float64{22, 24, 44, 30, 18, 18, 20, 28, 36}

func writePDF(title string, rows []attendance.AttendanceResponse, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d rows", generatedAt.Format("2006-01-02 15:04"), len(rows)))
	pdf.Ln(9)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range header {
			pdf.CellFormat(pdfColumnWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	writeHeader()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, r := range rows {
		if pdf.GetY()+6 > pageHeight-bottom-12 {
			pdf.AddPage()
			writeHeader()
		}
		for i, v := range record(r) {
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type zipEntry struct {
	name    string
	content []byte
}

func writeZIP(entries []zipEntry, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(e.content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
