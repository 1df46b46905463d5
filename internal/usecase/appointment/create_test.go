package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
)

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")

	uc := NewCreateAppointment(repo, nil)

	tomorrow := timezone.Now().Add(24 * time.Hour)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		VehicleID:   vehicle.ID,
		Description: "brakes squeal",
		Date:        tomorrow.Format("2006-01-02"),
		Time:        "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, vehicle.ID, ap.VehicleID)
	assert.Nil(t, ap.AssignedTechnicianID)
	assert.Equal(t, 10, ap.Date.Hour())
	assert.Equal(t, 30, ap.Date.Minute())
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := newFakeRepo()
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")
	other := repo.addVehicle("Honda", "Civic", "Lee")

	problemID := uint(0)
	{
		repo.mu.Lock()
		p := &models.VehicleProblem{ID: repo.nextID, VehicleID: other.ID, Description: "leak"}
		repo.nextID++
		repo.problems[p.ID] = p
		problemID = p.ID
		repo.mu.Unlock()
	}

	uc := NewCreateAppointment(repo, nil)
	tomorrow := timezone.Now().Add(24 * time.Hour).Format("2006-01-02")

	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{
			name: "unknown vehicle",
			in:   CreateAppointmentInput{VehicleID: 999, Date: tomorrow, Time: "10:00"},
			code: "vehicle_not_found",
		},
		{
			name: "garbage date",
			in:   CreateAppointmentInput{VehicleID: vehicle.ID, Date: "not-a-date", Time: "10:00"},
			code: "invalid_date_or_time",
		},
		{
			name: "past date",
			in:   CreateAppointmentInput{VehicleID: vehicle.ID, Date: "2020-01-01", Time: "10:00"},
			code: "date_in_past",
		},
		{
			name: "problem from another vehicle",
			in: CreateAppointmentInput{
				VehicleID:         vehicle.ID,
				ReportedProblemID: &problemID,
				Date:              tomorrow,
				Time:              "10:00",
			},
			code: "problem_vehicle_mismatch",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}
