package services

import (
	"bytes"
	"fmt"
	"strings"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/repositories"
	"busyatra/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking e-tickets as PDF.
type DocsService struct {
	BookingRepo     repositories.BookingRepository
	BookingSeatRepo repositories.BookingSeatRepository
	ScheduleRepo    repositories.ScheduleRepository
	BusRepo         repositories.BusRepository
	RequestID       string
}

// GenerateETicket builds the PDF for a paid booking owned by userID.
func (s DocsService) GenerateETicket(bookingID, userID int64) ([]byte, string, error) {
	detail, err := BookingQueryService{
		BookingRepo:     s.BookingRepo,
		BookingSeatRepo: s.BookingSeatRepo,
		ScheduleRepo:    s.ScheduleRepo,
		BusRepo:         s.BusRepo,
	}.Detail(bookingID, domain.RequestContext{UserID: domain.ID(userID), Role: domain.RoleCustomer})
	if err != nil {
		return nil, "", err
	}
	if detail.Booking.PaymentStatus != models.PaymentPaid {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "booking is not paid"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(*detail)
}

func buildETicketPDF(d BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("BusYatra E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUSYATRA E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref    : %s", safe(d.Booking.Reference, "-")),
		fmt.Sprintf("Bus            : %s (%s)", safe(d.Bus.BusNumber, "-"), safe(d.Bus.BusType, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(d.Bus.FromLocation, "-"), safe(d.Bus.ToLocation, "-")),
		fmt.Sprintf("Journey        : %s %s", safe(d.Schedule.JourneyDate, "-"), safe(d.Schedule.DepartureTime, "-")),
		fmt.Sprintf("Seats          : %s", safe(d.Booking.SeatNumbers, "-")),
		fmt.Sprintf("Amount Paid    : %s", utils.FormatRupees(d.Booking.TotalAmount)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, p := range d.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%s  %s, age %d (%s)  %s %s",
			p.SeatNumber, safe(p.PassengerName, "-"), p.PassengerAge, safe(p.Gender, "-"), p.IDType, p.IDNumber))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid photo ID for every passenger and show this ticket at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%s.pdf", strings.ToLower(safe(d.Booking.Reference, "booking")))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
