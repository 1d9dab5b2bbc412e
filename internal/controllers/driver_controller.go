package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_console/internal/config"
	"fleet_console/internal/models"
)

// updateDriverInput defines the fields a client can send to update a driver
// catalog entry. Pointers distinguish "absent" from zero values.
type updateDriverInput struct {
	Name          *string `json:"name"`
	LicenseNumber *string `json:"license_number"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
}

func validDriverStatus(s string) bool {
	return s == models.DriverActive || s == models.DriverInactive
}

// CreateDriver adds a driver catalog entry from the admin console.
func CreateDriver(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		LicenseNumber string `json:"license_number" binding:"required"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Status        string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	if input.Status == "" {
		input.Status = models.DriverActive
	}
	if !validDriverStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'active' or 'inactive'"})
		return
	}

	driver := models.Driver{
		Name:          input.Name,
		LicenseNumber: input.LicenseNumber,
		Email:         input.Email,
		Phone:         input.Phone,
		Status:        input.Status,
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		logrus.WithError(err).Error("CreateDriver: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// ListDrivers returns the full driver catalog.
func ListDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := config.DB.Order("name").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// GetDriver fetches a single driver by catalog ID.
func GetDriver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format."})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// UpdateDriver modifies catalog fields of an existing driver. Shift rows
// keep the name/license snapshot taken when they were assigned.
func UpdateDriver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format."})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = *input.LicenseNumber
	}
	if input.Email != nil {
		driver.Email = *input.Email
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.Status != nil {
		if !validDriverStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'active' or 'inactive'"})
			return
		}
		driver.Status = *input.Status
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		logrus.WithError(err).Error("UpdateDriver: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver updated successfully.",
		"driver":  driver,
	})
}

// SetDriverStatus flips a driver between active and inactive. Inactive
// drivers keep their existing shifts but cannot receive new ones.
func SetDriverStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format."})
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	if !validDriverStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'active' or 'inactive'"})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	driver.Status = payload.Status
	if err := config.DB.Save(&driver).Error; err != nil {
		logrus.WithError(err).Error("SetDriverStatus: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver status updated successfully.",
		"driver":  driver,
	})
}

// DeleteDriver removes a driver from the catalog.
func DeleteDriver(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format."})
		return
	}

	res := config.DB.Delete(&models.Driver{}, uint(id))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully."})
}
