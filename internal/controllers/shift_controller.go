package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"fleet_console/internal/config"
	"fleet_console/internal/models"
	"fleet_console/internal/scheduling"
)

// sched is the shared scheduler, wired from main so the store object is
// explicit rather than an implicit singleton.
var sched *scheduling.Scheduler

func InitScheduler(s *scheduling.Scheduler) {
	sched = s
}

type shiftInput struct {
	DriverID  uint   `json:"driver_id" binding:"required"`
	RouteID   uint   `json:"route_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM
}

// normalizeShiftInput validates date and time formats up front; any error
// the scheduler returns afterwards is either an expected scheduling outcome
// or an infrastructure failure.
func normalizeShiftInput(in *shiftInput) error {
	day, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return errors.New("start_date must be YYYY-MM-DD")
	}
	in.StartDate = day.Format("2006-01-02")
	if _, err := scheduling.ParseClock(in.StartTime); err != nil {
		return err
	}
	return nil
}

// renderSchedulingError maps the scheduling error taxonomy onto HTTP
// responses. Conflicts keep the combined driver-or-route occupancy message
// the console shows; callers must not rely on it naming which resource
// collided.
func renderSchedulingError(c *gin.Context, err error) {
	var limitErr *scheduling.DailyLimitError
	switch {
	case errors.Is(err, scheduling.ErrDriverNotFound),
		errors.Is(err, scheduling.ErrRouteNotFound),
		errors.Is(err, scheduling.ErrShiftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scheduling.ErrDriverInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment error: the selected driver is not in 'active' status."})
	case errors.Is(err, scheduling.ErrDriverConflict), errors.Is(err, scheduling.ErrRouteConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Assignment error: the driver or the route is already occupied in the selected time window."})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "Daily limit exceeded: this shift pushes the driver past 7.5 working hours for the day.",
			"total_hours": float64(limitErr.TotalMinutes) / 60,
		})
	case errors.Is(err, scheduling.ErrShiftNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Only active shifts can be cancelled."})
	default:
		logrus.WithError(err).Error("scheduling operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Scheduling operation failed"})
	}
}

// AssignShift creates a new shift after conflict and daily-limit validation.
func AssignShift(c *gin.Context) {
	var input shiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift input: " + err.Error()})
		return
	}
	if err := normalizeShiftInput(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := sched.AssignShift(input.DriverID, input.RouteID, input.StartDate, input.StartTime)
	if err != nil {
		renderSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

// ListShifts returns shift records, optionally filtered by date, driver,
// route, or status. Feeds both the turnos table and the calendar view.
func ListShifts(c *gin.Context) {
	query := config.DB.Model(&models.Shift{})
	if date := c.Query("date"); date != "" {
		query = query.Where("start_date = ?", date)
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if routeID := c.Query("route_id"); routeID != "" {
		query = query.Where("route_id = ?", routeID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var shifts []models.Shift
	if err := query.Order("start_date, start_time").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing shifts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": shifts})
}

// EditShift re-validates and replaces an existing shift. The shift under
// edit is excluded from conflict checks so an unchanged re-save succeeds.
func EditShift(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format."})
		return
	}

	var input shiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift input: " + err.Error()})
		return
	}
	if err := normalizeShiftInput(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := sched.EditShift(uint(id), input.DriverID, input.RouteID, input.StartDate, input.StartTime)
	if err != nil {
		renderSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// DeleteShift removes a shift record.
func DeleteShift(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format."})
		return
	}

	if err := sched.DeleteShift(uint(id)); err != nil {
		renderSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully."})
}

// UpdateShiftStatus handles the cancellation transition. Completion is an
// external event with no operation in scope.
func UpdateShiftStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format."})
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	if payload.Status != models.ShiftCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only the 'cancelled' status can be set through this endpoint"})
		return
	}

	shift, err := sched.CancelShift(uint(id))
	if err != nil {
		renderSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Shift cancelled successfully.",
		"shift":   shift,
	})
}
