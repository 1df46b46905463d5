package appointment

import (
	"context"
	"fmt"
	"slices"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/dto"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

// ======================================================
// WORKLOAD SUMMARY
// ======================================================

type WorkloadSummary struct {
	repo          domain.Repository
	capacityLimit int
}

func NewWorkloadSummary(
	repo domain.Repository,
	capacityLimit int,
) *WorkloadSummary {
	if capacityLimit <= 0 {
		capacityLimit = domain.DefaultCapacityLimit
	}
	return &WorkloadSummary{
		repo:          repo,
		capacityLimit: capacityLimit,
	}
}

// Execute recomputes every technician's load from appointment rows. The
// report always succeeds; a shop with no technicians yields empty sets.
func (uc *WorkloadSummary) Execute(
	ctx context.Context,
) (*dto.WorkloadReportDTO, error) {

	techs, err := uc.repo.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.WorkloadReportDTO{
		Technicians: make([]dto.TechnicianWorkloadDTO, 0, len(techs)),
	}

	for i := range techs {
		tech := &techs[i]

		load, err := uc.repo.CountActiveForTechnician(ctx, tech.ID)
		if err != nil {
			return nil, err
		}

		dayStart, dayEnd := timezone.DayBounds(
			timezone.NowIn(tech.Shop.Timezone),
			tech.Shop.Timezone,
		)
		today, err := uc.repo.CountForTechnicianBetween(ctx, tech.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		active, err := uc.repo.ListActiveForTechnician(ctx, tech.ID)
		if err != nil {
			return nil, err
		}

		available := domain.IsAvailable(load, uc.capacityLimit)
		if available {
			report.Summary.AvailableTechnicians++
		}

		report.Technicians = append(report.Technicians, dto.TechnicianWorkloadDTO{
			Technician: dto.TechnicianDTO{
				ID:   tech.ID,
				Name: tech.Name,
				Role: tech.Role,
				Shop: tech.Shop.Name,
			},
			Workload: dto.WorkloadDTO{
				CurrentAppointments: load,
				IsAvailable:         available,
				AppointmentsToday:   today,
				MaxCapacity:         uc.capacityLimit,
			},
			CurrentJobs: slices.Collect(domain.CurrentJobs(active)),
		})
	}

	report.Summary.TotalTechnicians = len(techs)
	report.Summary.BusyTechnicians = report.Summary.TotalTechnicians - report.Summary.AvailableTechnicians
	report.Summary.UtilizationRate = utilizationRate(
		report.Summary.BusyTechnicians,
		report.Summary.TotalTechnicians,
	)

	return report, nil
}

func utilizationRate(busy, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(busy)/float64(total)*100)
}
