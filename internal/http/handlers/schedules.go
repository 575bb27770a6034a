package handlers

import (
	"net/http"
	"strings"

	intconfig "busyatra/internal/config"
	"busyatra/internal/http/middleware"
	"busyatra/internal/repositories"
	"busyatra/internal/services"

	"github.com/gin-gonic/gin"
)

func scheduleService(c *gin.Context) services.ScheduleService {
	db := intconfig.DB
	return services.ScheduleService{
		DB:           db,
		ScheduleRepo: repositories.ScheduleRepository{DB: db},
		SeatRepo:     repositories.SeatRepository{DB: db},
		BusRepo:      repositories.BusRepository{DB: db},
		RequestID:    middleware.GetRequestID(c),
	}
}

// POST /api/schedules
func CreateSchedule(c *gin.Context) {
	var req services.CreateScheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.TravelerID = int64(middleware.CurrentUser(c).UserID)

	sched, err := scheduleService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": sched})
}

// GET /api/schedules?from=&to=&date=
func SearchSchedules(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	date := strings.TrimSpace(c.Query("date"))

	out, err := scheduleService(c).Search(from, to, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": out})
}

// DELETE /api/schedules/:id
func CancelSchedule(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	if err := scheduleService(c).Cancel(id, int64(rc.UserID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule cancelled"})
}

// GET /api/schedules/:id/seats
func GetScheduleSeats(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	svc := services.SeatmapService{
		ScheduleRepo: repositories.ScheduleRepository{DB: intconfig.DB},
		SeatRepo:     repositories.SeatRepository{DB: intconfig.DB},
	}
	out, err := svc.ListAvailableSeats(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/schedules/:id/manifest
func GetScheduleManifest(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	svc := services.BookingQueryService{
		BookingRepo:     repositories.BookingRepository{DB: intconfig.DB},
		BookingSeatRepo: repositories.BookingSeatRepository{DB: intconfig.DB},
		ScheduleRepo:    repositories.ScheduleRepository{DB: intconfig.DB},
		BusRepo:         repositories.BusRepository{DB: intconfig.DB},
	}
	out, err := svc.Manifest(id, int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manifest": out})
}
