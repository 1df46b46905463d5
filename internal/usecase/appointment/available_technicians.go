package appointment

import (
	"context"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/dto"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

type AvailableTechnicians struct {
	repo          domain.Repository
	capacityLimit int
}

func NewAvailableTechnicians(
	repo domain.Repository,
	capacityLimit int,
) *AvailableTechnicians {
	if capacityLimit <= 0 {
		capacityLimit = domain.DefaultCapacityLimit
	}
	return &AvailableTechnicians{
		repo:          repo,
		capacityLimit: capacityLimit,
	}
}

func (uc *AvailableTechnicians) Execute(
	ctx context.Context,
) ([]dto.AvailableTechnicianDTO, error) {

	techs, err := uc.repo.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AvailableTechnicianDTO, 0, len(techs))

	for i := range techs {
		tech := &techs[i]

		load, err := uc.repo.CountActiveForTechnician(ctx, tech.ID)
		if err != nil {
			return nil, err
		}
		if !domain.IsAvailable(load, uc.capacityLimit) {
			continue
		}

		dayStart, dayEnd := timezone.DayBounds(
			timezone.NowIn(tech.Shop.Timezone),
			tech.Shop.Timezone,
		)
		today, err := uc.repo.CountForTechnicianBetween(ctx, tech.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		out = append(out, dto.AvailableTechnicianDTO{
			ID:                tech.ID,
			Name:              tech.Name,
			Role:              tech.Role,
			CurrentWorkload:   load,
			MaxCapacity:       uc.capacityLimit,
			AppointmentsToday: today,
		})
	}

	return out, nil
}
