package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Receipt carries the data rendered onto a booking receipt PDF.
type Receipt struct {
	BookingID     string
	TeacherName   string
	Subject       string
	StudentName   string
	StartsAt      time.Time
	DurationHours int
	LessonType    string
	Status        string
	LessonPrice   int
	PlatformFee   int
	TotalPrice    int
}

// RenderReceiptPDF produces the PDF document for a single booking receipt.
func RenderReceiptPDF(r Receipt) ([]byte, error) {
	if r.BookingID == "" {
		return nil, fmt.Errorf("receipt requires a booking id")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "LESSON BOOKING RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking %s", r.BookingID), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 7, label, "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "", false, 0, "")
	}

	line("Teacher", r.TeacherName)
	line("Subject", r.Subject)
	line("Student", r.StudentName)
	line("Lesson starts", r.StartsAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))
	line("Duration", fmt.Sprintf("%d hour(s)", r.DurationHours))
	line("Lesson type", r.LessonType)
	line("Status", r.Status)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Price breakdown", "B", 1, "", false, 0, "")
	line("Lesson price", fmt.Sprintf("%d", r.LessonPrice))
	line("Platform fee (10%)", fmt.Sprintf("%d", r.PlatformFee))
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(55, 9, "Total", "T", 0, "", false, 0, "")
	pdf.CellFormat(0, 9, fmt.Sprintf("%d", r.TotalPrice), "T", 1, "", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
