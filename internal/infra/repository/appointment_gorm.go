package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// asDomainErr keeps gorm's missing-row error out of the domain layer so
// use cases can tell "no such record" from a failing database.
func asDomainErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, asDomainErr(err)
	}
	return &shop, nil
}

// --------------------------------------------------
// Vehicle
// --------------------------------------------------

func (r *AppointmentGormRepository) GetVehicleByID(
	ctx context.Context,
	id uint,
) (*models.Vehicle, error) {

	var v models.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&v, id).Error; err != nil {
		return nil, asDomainErr(err)
	}

	return &v, nil
}

func (r *AppointmentGormRepository) GetVehicleProblemByID(
	ctx context.Context,
	id uint,
) (*models.VehicleProblem, error) {

	var p models.VehicleProblem
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, asDomainErr(err)
	}

	return &p, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("ReportedProblem").
		Preload("AssignedTechnician").
		Preload("AssignedTechnician.Shop").
		First(&ap, id).Error; err != nil {
		return nil, asDomainErr(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("AssignedTechnician").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Technician
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployeeByID(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		First(&emp, id).Error; err != nil {
		return nil, asDomainErr(err)
	}

	return &emp, nil
}

func (r *AppointmentGormRepository) GetEmployeeForUpdate(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&emp, id).Error; err != nil {
		return nil, asDomainErr(err)
	}

	return &emp, nil
}

func (r *AppointmentGormRepository) ListTechnicians(
	ctx context.Context,
) ([]models.Employee, error) {

	var techs []models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Where("LOWER(role) LIKE ? OR LOWER(role) LIKE ?", "%technician%", "%mechanic%").
		Order("id ASC").
		Find(&techs).Error; err != nil {
		return nil, err
	}

	return techs, nil
}

// --------------------------------------------------
// Workload
// --------------------------------------------------
// Load is always recounted from appointment rows; there is no cached
// counter to drift out of sync.

func (r *AppointmentGormRepository) CountActiveForTechnician(
	ctx context.Context,
	technicianID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"assigned_technician_id = ? AND status IN ?",
			technicianID,
			activeStatusStrings(),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *AppointmentGormRepository) CountForTechnicianBetween(
	ctx context.Context,
	technicianID uint,
	start time.Time,
	end time.Time,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"assigned_technician_id = ? AND date >= ? AND date < ?",
			technicianID, start, end,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *AppointmentGormRepository) ListActiveForTechnician(
	ctx context.Context,
	technicianID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Where(
			"assigned_technician_id = ? AND status IN ?",
			technicianID,
			activeStatusStrings(),
		).
		Order("assigned_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func activeStatusStrings() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
