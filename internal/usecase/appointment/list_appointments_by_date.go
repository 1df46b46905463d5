package appointment

import (
	"context"
	"time"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/dto"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := timezone.DayBounds(date, timezone.DefaultTimezone)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		item := dto.AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.Date,
			Status:       ap.Status,
			Vehicle:      ap.Vehicle.Description(),
			CustomerName: ap.Vehicle.Customer.Name,
			AssignedAt:   ap.AssignedAt,
		}
		if ap.AssignedTechnician != nil {
			item.Technician = ap.AssignedTechnician.Name
		}

		out = append(out, item)
	}

	return out, nil
}
