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

// ======================================================
// ASSIGN TECHNICIAN
// ======================================================

type AssignResult struct {
	Appointment    *models.Appointment
	Technician     *models.Employee
	PreviousStatus domain.Status
}

type AssignTechnician struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	capacityLimit int
}

func NewAssignTechnician(
	repo domain.Repository,
	audit *audit.Dispatcher,
	capacityLimit int,
) *AssignTechnician {
	if capacityLimit <= 0 {
		capacityLimit = domain.DefaultCapacityLimit
	}
	return &AssignTechnician{
		repo:          repo,
		audit:         audit,
		capacityLimit: capacityLimit,
	}
}

// Execute checks capacity and assigns inside one transaction. The
// technician row is locked before counting, so two concurrent assigns
// against the same technician serialize and the second one sees the
// first one's appointment in its count. The appointment itself is read
// under that lock too; a pre-lock snapshot could have been reassigned
// or advanced by a concurrent request, and deciding (or saving) from it
// would let the count discount a job the technician no longer holds.
func (uc *AssignTechnician) Execute(
	ctx context.Context,
	appointmentID uint,
	technicianID uint,
) (*AssignResult, error) {

	tech, err := uc.repo.GetEmployeeByID(ctx, technicianID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("technician_not_found")
	}
	if err != nil {
		return nil, err
	}

	var (
		ap       *models.Appointment
		previous domain.Status
	)

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetEmployeeForUpdate(ctx, technicianID); err != nil {
			return err
		}

		fresh, err := tx.GetAppointmentByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		ap = fresh
		previous = domain.Status(fresh.Status)

		load, err := tx.CountActiveForTechnician(ctx, technicianID)
		if err != nil {
			return err
		}

		// Reassignment to the same technician must not count the
		// appointment against its own slot.
		if fresh.AssignedTechnicianID != nil &&
			*fresh.AssignedTechnicianID == technicianID &&
			previous.IsActive() {
			load--
		}

		if !domain.IsAvailable(load, uc.capacityLimit) {
			return httperr.CapacityExceeded(load, uc.capacityLimit)
		}

		now := timezone.NowIn(tech.Shop.Timezone)
		if err := domain.Assign(fresh, technicianID, now); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, fresh)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   tech.ShopID,
		Action:   "technician_assigned",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"technician_id":   technicianID,
			"previous_status": string(previous),
		},
	})

	ap.AssignedTechnician = tech
	return &AssignResult{
		Appointment:    ap,
		Technician:     tech,
		PreviousStatus: previous,
	}, nil
}
