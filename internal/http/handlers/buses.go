package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	intconfig "busyatra/internal/config"
	"busyatra/internal/domain/models"
	"busyatra/internal/http/middleware"
	"busyatra/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type busRequest struct {
	BusNumber    string `json:"busNumber"`
	BusType      string `json:"busType"`
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	Fare         int64  `json:"fare"`
	TotalSeats   int    `json:"totalSeats"`
}

func (r busRequest) validate() string {
	if strings.TrimSpace(r.BusNumber) == "" {
		return "busNumber is required"
	}
	if strings.TrimSpace(r.FromLocation) == "" || strings.TrimSpace(r.ToLocation) == "" {
		return "fromLocation and toLocation are required"
	}
	if r.Fare <= 0 {
		return "fare must be positive"
	}
	if r.TotalSeats <= 0 || r.TotalSeats > 100 {
		return "totalSeats must be between 1 and 100"
	}
	return ""
}

// GET /api/buses
func ListBuses(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	repo := repositories.BusRepository{DB: intconfig.DB}
	buses, err := repo.ListByTraveler(int64(rc.UserID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to load buses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, "validation_error", msg)
		return
	}

	rc := middleware.CurrentUser(c)
	repo := repositories.BusRepository{DB: intconfig.DB}
	id, err := repo.Create(models.Bus{
		TravelerID:   int64(rc.UserID),
		BusNumber:    strings.ToUpper(strings.TrimSpace(req.BusNumber)),
		BusType:      strings.TrimSpace(req.BusType),
		FromLocation: strings.TrimSpace(req.FromLocation),
		ToLocation:   strings.TrimSpace(req.ToLocation),
		Fare:         req.Fare,
		TotalSeats:   req.TotalSeats,
	})
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			respondError(c, http.StatusConflict, "conflict", "bus number is already registered")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to save bus")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, "validation_error", msg)
		return
	}

	rc := middleware.CurrentUser(c)
	repo := repositories.BusRepository{DB: intconfig.DB}
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "not_found", "bus not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to load bus")
		return
	}
	if err := repo.Update(models.Bus{
		ID:           id,
		TravelerID:   int64(rc.UserID),
		BusNumber:    strings.ToUpper(strings.TrimSpace(req.BusNumber)),
		BusType:      strings.TrimSpace(req.BusType),
		FromLocation: strings.TrimSpace(req.FromLocation),
		ToLocation:   strings.TrimSpace(req.ToLocation),
		Fare:         req.Fare,
		TotalSeats:   req.TotalSeats,
	}); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to update bus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus updated"})
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		return
	}
	rc := middleware.CurrentUser(c)
	repo := repositories.BusRepository{DB: intconfig.DB}
	n, err := repo.Delete(id, int64(rc.UserID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to delete bus")
		return
	}
	if n == 0 {
		respondError(c, http.StatusNotFound, "not_found", "bus not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}
