package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/AutoRepairsHQ/shop-manager/internal/audit"
	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	VehicleID         uint
	ReportedProblemID *uint
	Description       string

	Date string // "2006-01-02"
	Time string // "15:04"
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	vehicle, err := uc.repo.GetVehicleByID(ctx, in.VehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("vehicle_not_found")
	}
	if err != nil {
		return nil, err
	}

	when, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if when.Before(timezone.Now()) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	if in.ReportedProblemID != nil {
		problem, err := uc.repo.GetVehicleProblemByID(ctx, *in.ReportedProblemID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("problem_not_found")
		}
		if err != nil {
			return nil, err
		}
		if problem.VehicleID != vehicle.ID {
			return nil, httperr.ErrBusiness("problem_vehicle_mismatch")
		}
	}

	ap := &models.Appointment{
		VehicleID:         vehicle.ID,
		ReportedProblemID: in.ReportedProblemID,
		Description:       in.Description,
		Date:              when,
		Status:            string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	ap.Vehicle = *vehicle
	return ap, nil
}
