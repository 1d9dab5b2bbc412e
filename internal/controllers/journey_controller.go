package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_console/internal/config"
	"fleet_console/internal/models"
	"fleet_console/internal/scheduling"
)

// driverForUser resolves the driver catalog entry linked to the
// authenticated user's account.
func driverForUser(c *gin.Context) (models.Driver, bool) {
	userID := uint(c.MustGet("user_id").(float64))

	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No driver profile linked to this account."})
		} else {
			logrus.WithError(err).Error("driverForUser: lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve driver profile."})
		}
		return models.Driver{}, false
	}
	return driver, true
}

// StartJourney opens the driver's working day. At most one journey per
// driver may be active.
func StartJourney(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var existing models.Journey
	err := config.DB.Where("driver_id = ? AND active = ?", driver.ID, true).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A journey is already active."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("StartJourney: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check journey state."})
		return
	}

	journey := models.Journey{
		DriverID:  driver.ID,
		StartedAt: time.Now(),
		Active:    true,
	}
	if err := config.DB.Create(&journey).Error; err != nil {
		logrus.WithError(err).Error("StartJourney: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start journey."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"journey": journey})
}

// StopJourney closes the active working day.
func StopJourney(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var journey models.Journey
	if err := config.DB.Where("driver_id = ? AND active = ?", driver.ID, true).First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active journey."})
		} else {
			logrus.WithError(err).Error("StopJourney: lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journey."})
		}
		return
	}

	now := time.Now()
	journey.EndedAt = &now
	journey.Active = false
	if err := config.DB.Save(&journey).Error; err != nil {
		logrus.WithError(err).Error("StopJourney: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop journey."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"journey": journey})
}

// GetJourney reports the dashboard view: journey state, elapsed and
// remaining minutes against the legal cap, and today's assigned shifts.
func GetJourney(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	today := time.Now().Format("2006-01-02")
	var shifts []models.Shift
	if err := config.DB.
		Where("driver_id = ? AND start_date = ? AND status = ?", driver.ID, today, models.ShiftActive).
		Order("start_time").
		Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing today's shifts: " + err.Error()})
		return
	}

	response := gin.H{
		"active":          false,
		"limit_minutes":   scheduling.DailyLimitMinutes,
		"shifts":          shifts,
		"elapsed_minutes": 0,
	}

	var journey models.Journey
	err := config.DB.Where("driver_id = ? AND active = ?", driver.ID, true).First(&journey).Error
	switch {
	case err == nil:
		elapsed := int(time.Since(journey.StartedAt).Minutes())
		remaining := scheduling.DailyLimitMinutes - elapsed
		if remaining < 0 {
			remaining = 0
		}
		response["active"] = true
		response["journey"] = journey
		response["elapsed_minutes"] = elapsed
		response["remaining_minutes"] = remaining
	case errors.Is(err, gorm.ErrRecordNotFound):
		response["remaining_minutes"] = scheduling.DailyLimitMinutes
	default:
		logrus.WithError(err).Error("GetJourney: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journey."})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListMyShifts returns the authenticated driver's shifts, optionally
// filtered by date.
func ListMyShifts(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	query := config.DB.Where("driver_id = ?", driver.ID)
	if date := c.Query("date"); date != "" {
		query = query.Where("start_date = ?", date)
	}

	var shifts []models.Shift
	if err := query.Order("start_date, start_time").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing shifts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": shifts})
}
