package scheduling

import (
	"fleet_console/internal/models"
)

// Catalog resolves driver and route references. Implementations return
// ErrDriverNotFound / ErrRouteNotFound for unknown ids.
type Catalog interface {
	DriverByID(id uint) (models.Driver, error)
	RouteByID(id uint) (models.Route, error)
}

// ShiftStore is the persistence surface the validator and scheduler need.
// The listing methods return only shifts with status "active"; cancelled and
// completed shifts never participate in conflict or limit checks.
type ShiftStore interface {
	ShiftByID(id uint) (models.Shift, error)
	ActiveByDriverDate(driverID uint, date string) ([]models.Shift, error)
	ActiveByRouteDate(routeID uint, date string) ([]models.Shift, error)
	Insert(shift *models.Shift) error
	Replace(id uint, shift *models.Shift) error
	Remove(id uint) error
	UpdateStatus(id uint, status string) error
}
