package controllers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_console/internal/config"
	"fleet_console/internal/models"
	"fleet_console/internal/scheduling"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteResponse mirrors models.Route but renders geometry as a GeoJSON string
// and includes the human-readable duration alongside the minute count.
type RouteResponse struct {
	ID              uint           `json:"ID"`
	CreatedAt       time.Time      `json:"CreatedAt"`
	UpdatedAt       time.Time      `json:"UpdatedAt"`
	DeletedAt       gorm.DeletedAt `json:"DeletedAt,omitempty"`
	Name            string         `json:"name"`
	Origin          string         `json:"origin"`
	Destination     string         `json:"destination"`
	DurationMinutes int            `json:"duration_minutes"`
	Duration        string         `json:"duration"`
	Geometry        string         `json:"geometry,omitempty"`
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, _ := convertWKBToGeoJSON(route.Geometry)
	return RouteResponse{
		ID:              route.ID,
		CreatedAt:       route.CreatedAt,
		UpdatedAt:       route.UpdatedAt,
		DeletedAt:       route.DeletedAt,
		Name:            route.Name,
		Origin:          route.Origin,
		Destination:     route.Destination,
		DurationMinutes: route.DurationMinutes,
		Duration:        formatDuration(route.DurationMinutes),
		Geometry:        jsonGeom,
	}
}

// formatDuration renders minutes in the "1h 30m" form the console displays.
func formatDuration(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// resolveDurationMinutes accepts either an explicit minute count or the
// legacy "1h 30m" string, parsed once here so nothing downstream re-parses.
func resolveDurationMinutes(durationMinutes int, duration string) (int, error) {
	if durationMinutes > 0 {
		return durationMinutes, nil
	}
	if duration != "" {
		return scheduling.ParseLegacyDuration(duration)
	}
	return 0, errors.New("either duration_minutes or duration is required")
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateRoute registers a new route, optionally with a GeoJSON path.
func CreateRoute(c *gin.Context) {
	var input struct {
		Name            string `json:"name" binding:"required"`
		Origin          string `json:"origin" binding:"required"`
		Destination     string `json:"destination" binding:"required"`
		DurationMinutes int    `json:"duration_minutes"`
		Duration        string `json:"duration"`
		Geometry        string `json:"geometry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	minutes, err := resolveDurationMinutes(input.DurationMinutes, input.Duration)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration: " + err.Error()})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route := models.Route{
		Name:            input.Name,
		Origin:          input.Origin,
		Destination:     input.Destination,
		DurationMinutes: minutes,
		Geometry:        wkbGeom,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// ListRoutes returns all routes.
func ListRoutes(c *gin.Context) {
	var routes []models.Route
	if err := config.DB.Order("name").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch routes"})
		return
	}

	var routeResponses []RouteResponse
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses})
}

// GetRoute returns a single route.
func GetRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, uint(rID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// UpdateRoute handles updating an existing route. Existing shifts keep the
// duration they inherited when they were assigned.
func UpdateRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, uint(rID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: database error fetching route")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name            *string `json:"name"`
		Origin          *string `json:"origin"`
		Destination     *string `json:"destination"`
		DurationMinutes *int    `json:"duration_minutes"`
		Duration        *string `json:"duration"`
		Geometry        *string `json:"geometry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Name != nil {
		route.Name = *input.Name
	}
	if input.Origin != nil {
		route.Origin = *input.Origin
	}
	if input.Destination != nil {
		route.Destination = *input.Destination
	}
	if input.DurationMinutes != nil || input.Duration != nil {
		var minuteArg int
		var durationArg string
		if input.DurationMinutes != nil {
			minuteArg = *input.DurationMinutes
		}
		if input.Duration != nil {
			durationArg = *input.Duration
		}
		minutes, err := resolveDurationMinutes(minuteArg, durationArg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration: " + err.Error()})
			return
		}
		route.DurationMinutes = minutes
	}
	if input.Geometry != nil {
		wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
			return
		}
		route.Geometry = wkbGeom
	}

	if err := config.DB.Save(&route).Error; err != nil {
		logrus.WithError(err).Error("UpdateRoute: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// DeleteRoute removes a route from the catalog.
func DeleteRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	res := config.DB.Delete(&models.Route{}, uint(rID))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully."})
}
