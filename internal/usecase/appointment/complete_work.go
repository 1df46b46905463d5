package appointment

import (
	"context"
	"errors"

	"github.com/AutoRepairsHQ/shop-manager/internal/audit"
	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

type CompleteWork struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteWork(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteWork {
	return &CompleteWork{
		repo:  repo,
		audit: audit,
	}
}

// Execute finishes the job. The technician's capacity frees up by itself:
// completed appointments simply stop matching the active-load query.
func (uc *CompleteWork) Execute(
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

	if err := domain.CompleteWork(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopIDOf(ap),
		Action:   "work_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &WorkResult{Appointment: ap, PreviousStatus: previous}, nil
}
