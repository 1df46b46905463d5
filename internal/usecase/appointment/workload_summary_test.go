package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/dto"
)

func TestWorkloadSummary(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop("Main Street Auto")
	ana := repo.addTechnician(shop, "Ana", "technician")
	bruno := repo.addTechnician(shop, "Bruno", "mechanic")
	repo.addTechnician(shop, "Carla", "receptionist") // not a technician

	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")

	// Ana: one active job. Bruno: full.
	repo.addAppointment(vehicle, domain.StatusAssigned, &ana.ID, time.Now())
	repo.addAppointment(vehicle, domain.StatusAssigned, &bruno.ID, time.Now())
	repo.addAppointment(vehicle, domain.StatusInProgress, &bruno.ID, time.Now())
	repo.addAppointment(vehicle, domain.StatusAssigned, &bruno.ID, time.Now())

	uc := NewWorkloadSummary(repo, 3)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalTechnicians)
	assert.Equal(t, 1, report.Summary.AvailableTechnicians)
	assert.Equal(t, 1, report.Summary.BusyTechnicians)
	assert.Equal(t, "50.0%", report.Summary.UtilizationRate)

	byName := map[string]dto.TechnicianWorkloadDTO{}
	for _, tw := range report.Technicians {
		byName[tw.Technician.Name] = tw
	}

	anaRow, ok := byName["Ana"]
	require.True(t, ok)
	assert.Equal(t, 1, anaRow.Workload.CurrentAppointments)
	assert.True(t, anaRow.Workload.IsAvailable)
	assert.Equal(t, 3, anaRow.Workload.MaxCapacity)
	assert.Len(t, anaRow.CurrentJobs, 1)
	assert.Equal(t, "Toyota Corolla", anaRow.CurrentJobs[0].Vehicle)

	brunoRow, ok := byName["Bruno"]
	require.True(t, ok)
	assert.Equal(t, 3, brunoRow.Workload.CurrentAppointments)
	assert.False(t, brunoRow.Workload.IsAvailable)
	assert.Len(t, brunoRow.CurrentJobs, 3)

	_, hasCarla := byName["Carla"]
	assert.False(t, hasCarla, "non-technician roles stay out of the report")
}

func TestWorkloadSummaryEmptyShop(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop("Main Street Auto")

	uc := NewWorkloadSummary(repo, 3)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.TotalTechnicians)
	assert.Equal(t, "0%", report.Summary.UtilizationRate)
	assert.Empty(t, report.Technicians)
}

func TestAvailableTechnicians(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop("Main Street Auto")
	ana := repo.addTechnician(shop, "Ana", "technician")
	bruno := repo.addTechnician(shop, "Bruno", "mechanic")

	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")
	for i := 0; i < 3; i++ {
		repo.addAppointment(vehicle, domain.StatusAssigned, &bruno.ID, time.Now())
	}
	repo.addAppointment(vehicle, domain.StatusInProgress, &ana.ID, time.Now())

	uc := NewAvailableTechnicians(repo, 3)

	techs, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, techs, 1)
	assert.Equal(t, "Ana", techs[0].Name)
	assert.Equal(t, 1, techs[0].CurrentWorkload)
	assert.Equal(t, 3, techs[0].MaxCapacity)
	assert.Equal(t, 1, techs[0].AppointmentsToday)
}
