package handlers

import (
	"net/http"

	intconfig "busyatra/internal/config"
	"busyatra/internal/http/middleware"
	"busyatra/internal/repositories"
	"busyatra/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingQueryService() services.BookingQueryService {
	db := intconfig.DB
	return services.BookingQueryService{
		BookingRepo:     repositories.BookingRepository{DB: db},
		BookingSeatRepo: repositories.BookingSeatRepository{DB: db},
		ScheduleRepo:    repositories.ScheduleRepository{DB: db},
		BusRepo:         repositories.BusRepository{DB: db},
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req services.ReserveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.UserID = int64(middleware.CurrentUser(c).UserID)
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	svc := services.ReservationService{DB: intconfig.DB, RequestID: middleware.GetRequestID(c)}
	out, err := svc.Reserve(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)

	svc := services.CancellationService{DB: intconfig.DB, RequestID: middleware.GetRequestID(c)}
	out, err := svc.Cancel(id, int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/bookings
func ListMyBookings(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	out, err := bookingQueryService().ListForUser(int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func GetBookingDetail(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	out, err := bookingQueryService().Detail(id, middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicketPDF(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)

	db := intconfig.DB
	svc := services.DocsService{
		BookingRepo:     repositories.BookingRepository{DB: db},
		BookingSeatRepo: repositories.BookingSeatRepository{DB: db},
		ScheduleRepo:    repositories.ScheduleRepository{DB: db},
		BusRepo:         repositories.BusRepository{DB: db},
		RequestID:       middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(id, int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
