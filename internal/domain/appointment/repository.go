package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

// ErrNotFound is returned by the Get* methods when no row matches.
// Callers branch on it to tell a missing record from a failing store.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Vehicle --------
	GetVehicleByID(
		ctx context.Context,
		id uint,
	) (*models.Vehicle, error)

	GetVehicleProblemByID(
		ctx context.Context,
		id uint,
	) (*models.VehicleProblem, error)

	// -------- Appointment --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Technician --------
	GetEmployeeByID(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	// GetEmployeeForUpdate takes a row-level lock on the employee so that
	// concurrent capacity checks against the same technician serialize.
	// Only meaningful inside WithTx.
	GetEmployeeForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	ListTechnicians(
		ctx context.Context,
	) ([]models.Employee, error)

	// -------- Workload (always computed fresh) --------
	CountActiveForTechnician(
		ctx context.Context,
		technicianID uint,
	) (int, error)

	CountForTechnicianBetween(
		ctx context.Context,
		technicianID uint,
		start time.Time,
		end time.Time,
	) (int, error)

	ListActiveForTechnician(
		ctx context.Context,
		technicianID uint,
	) ([]models.Appointment, error)

	// -------- Transactions --------
	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
