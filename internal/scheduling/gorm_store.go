package scheduling

import (
	"errors"

	"gorm.io/gorm"

	"fleet_console/internal/models"
)

// GormStore backs Catalog and ShiftStore with the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DriverByID(id uint) (models.Driver, error) {
	var driver models.Driver
	if err := s.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Driver{}, ErrDriverNotFound
		}
		return models.Driver{}, err
	}
	return driver, nil
}

func (s *GormStore) RouteByID(id uint) (models.Route, error) {
	var route models.Route
	if err := s.db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Route{}, ErrRouteNotFound
		}
		return models.Route{}, err
	}
	return route, nil
}

func (s *GormStore) ShiftByID(id uint) (models.Shift, error) {
	var shift models.Shift
	if err := s.db.First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Shift{}, ErrShiftNotFound
		}
		return models.Shift{}, err
	}
	return shift, nil
}

func (s *GormStore) ActiveByDriverDate(driverID uint, date string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.
		Where("driver_id = ? AND start_date = ? AND status = ?", driverID, date, models.ShiftActive).
		Find(&shifts).Error
	return shifts, err
}

func (s *GormStore) ActiveByRouteDate(routeID uint, date string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.
		Where("route_id = ? AND start_date = ? AND status = ?", routeID, date, models.ShiftActive).
		Find(&shifts).Error
	return shifts, err
}

func (s *GormStore) Insert(shift *models.Shift) error {
	return s.db.Create(shift).Error
}

func (s *GormStore) Replace(id uint, shift *models.Shift) error {
	var existing models.Shift
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}

	existing.DriverID = shift.DriverID
	existing.RouteID = shift.RouteID
	existing.DriverName = shift.DriverName
	existing.DriverLicense = shift.DriverLicense
	existing.RouteName = shift.RouteName
	existing.StartDate = shift.StartDate
	existing.StartTime = shift.StartTime
	existing.DurationMinutes = shift.DurationMinutes

	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*shift = existing
	return nil
}

func (s *GormStore) Remove(id uint) error {
	res := s.db.Delete(&models.Shift{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func (s *GormStore) UpdateStatus(id uint, status string) error {
	res := s.db.Model(&models.Shift{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}
