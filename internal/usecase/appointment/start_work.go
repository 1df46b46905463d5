package appointment

import (
	"context"
	"errors"

	"github.com/AutoRepairsHQ/shop-manager/internal/audit"
	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

type WorkResult struct {
	Appointment    *models.Appointment
	PreviousStatus domain.Status
}

type StartWork struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartWork(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartWork {
	return &StartWork{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartWork) Execute(
	ctx context.Context,
	appointmentID uint,
) (*WorkResult, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)

	now := timezone.Now()
	if tech := ap.AssignedTechnician; tech != nil {
		now = timezone.NowIn(tech.Shop.Timezone)
	}

	if err := domain.StartWork(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopIDOf(ap),
		Action:   "work_started",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &WorkResult{Appointment: ap, PreviousStatus: previous}, nil
}

func shopIDOf(ap *models.Appointment) uint {
	if ap.AssignedTechnician != nil {
		return ap.AssignedTechnician.ShopID
	}
	return 0
}
