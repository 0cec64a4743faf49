// Package receipts renders the membership registration receipt PDF.
package receipts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Snapshot is everything the receipt shows, captured at generation time.
// Render is deterministic over a Snapshot: the PDF creation date comes
// from GeneratedAt, so identical snapshots produce identical bytes.
type Snapshot struct {
	RegistrationID string
	ReceiptNumber  string
	GeneratedAt    time.Time

	MemberName string
	Email      string
	Phone      string
	Age        int
	WeightKg   float64
	JoinDate   time.Time

	TierCode    string
	TierName    string
	Amenities   []string
	Prepay      bool
	Months      int
	MonthlyRate float64

	BaseFee    float64
	MonthlyFee float64
	Discount   float64
	AddonFees  float64
	Total      float64
}

const (
	labelWidth = 55.0
	valueWidth = 115.0
	rowHeight  = 7.0
)

// Render produces the receipt PDF for a membership snapshot.
func Render(s Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(s.GeneratedAt)
	pdf.SetModificationDate(s.GeneratedAt)
	pdf.SetTitle("HealthHub Payment Receipt", false)
	pdf.SetMargins(18, 20, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, "HealthHub - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(127, 140, 141)
	metaRow(pdf, "Registration ID:", s.RegistrationID)
	metaRow(pdf, "Receipt Number:", s.ReceiptNumber)
	metaRow(pdf, "Receipt Date:", s.GeneratedAt.Format("January 2, 2006"))
	pdf.Ln(6)

	sectionHeading(pdf, "Member Information")
	infoRow(pdf, "Name:", s.MemberName)
	infoRow(pdf, "Email:", s.Email)
	infoRow(pdf, "Phone:", s.Phone)
	infoRow(pdf, "Age:", fmt.Sprintf("%d", s.Age))
	infoRow(pdf, "Weight:", fmt.Sprintf("%.1f kg", s.WeightKg))
	infoRow(pdf, "Date of Joining:", s.JoinDate.Format("January 2, 2006"))
	pdf.Ln(6)

	sectionHeading(pdf, "Membership Details")
	infoRow(pdf, "Membership Type:", fmt.Sprintf("%s %s", s.TierCode, s.TierName))
	for i, a := range s.Amenities {
		label := ""
		if i == 0 {
			label = "Amenities:"
		}
		infoRow(pdf, label, a)
	}
	if s.Prepay {
		infoRow(pdf, "Advance Payment:", fmt.Sprintf("%d months", s.Months))
	}
	pdf.Ln(6)

	sectionHeading(pdf, "Fee Breakdown")
	feeHeader(pdf)
	feeRow(pdf, "Base Registration Fee", s.BaseFee)
	if s.MonthlyFee > 0 {
		feeRow(pdf, fmt.Sprintf("Monthly Fee (%d months @ Rs %.0f/month)", s.Months, s.MonthlyRate), s.MonthlyRate*float64(s.Months))
		if s.Discount > 0 {
			feeRow(pdf, fmt.Sprintf("Discount (Rs 200 x %d extra months)", s.Months-2), -s.Discount)
		}
	}
	if s.AddonFees > 0 {
		feeRow(pdf, "L3 Add-ons", s.AddonFees)
	}
	totalRow(pdf, s.Total)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(44, 62, 80)
	pdf.MultiCell(0, 5,
		"Thank you for joining HealthHub!\n"+
			"For any queries, contact us at support@healthhub.fit.\n"+
			"This is a computer-generated receipt and does not require a signature.",
		"", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func metaRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetTextColor(127, 140, 141)
	pdf.CellFormat(labelWidth, 6, label, "", 0, "R", false, 0, "")
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(valueWidth, 6, value, "", 1, "L", false, 0, "")
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(52, 73, 94)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func infoRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetTextColor(44, 62, 80)
	pdf.SetFillColor(236, 240, 241)
	pdf.CellFormat(labelWidth, rowHeight, label, "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, rowHeight, value, "1", 1, "L", false, 0, "")
}

func feeHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(250, 250, 250)
	pdf.CellFormat(labelWidth+valueWidth-40, rowHeight, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight, "Amount (Rs)", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(44, 62, 80)
}

func feeRow(pdf *fpdf.Fpdf, desc string, amount float64) {
	pdf.CellFormat(labelWidth+valueWidth-40, rowHeight, desc, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, rowHeight, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
}

func totalRow(pdf *fpdf.Fpdf, total float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(213, 244, 230)
	pdf.CellFormat(labelWidth+valueWidth-40, rowHeight+1, "Total Amount Paid", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight+1, fmt.Sprintf("%.2f", total), "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}
