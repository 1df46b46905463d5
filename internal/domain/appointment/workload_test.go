package appointment

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

func TestIsAvailableStrictLessThan(t *testing.T) {
	assert.True(t, IsAvailable(0, 3))
	assert.True(t, IsAvailable(2, 3))
	assert.False(t, IsAvailable(3, 3)) // at the limit means full
	assert.False(t, IsAvailable(4, 3))

	// non-positive limit falls back to the default
	assert.True(t, IsAvailable(2, 0))
	assert.False(t, IsAvailable(DefaultCapacityLimit, 0))
}

func TestIsTechnicianRole(t *testing.T) {
	assert.True(t, IsTechnicianRole("technician"))
	assert.True(t, IsTechnicianRole("Senior Technician"))
	assert.True(t, IsTechnicianRole("mechanic"))
	assert.True(t, IsTechnicianRole("Lead Mechanic"))
	assert.False(t, IsTechnicianRole("receptionist"))
	assert.False(t, IsTechnicianRole("manager"))
	assert.False(t, IsTechnicianRole(""))
}

func TestCurrentJobs(t *testing.T) {
	assigned := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	started := assigned.Add(time.Hour)

	active := []models.Appointment{
		{
			ID:         1,
			Status:     string(StatusAssigned),
			AssignedAt: &assigned,
			Vehicle: models.Vehicle{
				Make:     "Toyota",
				Model:    "Corolla",
				Customer: models.Customer{Name: "Dana"},
			},
		},
		{
			ID:         2,
			Status:     string(StatusInProgress),
			AssignedAt: &assigned,
			StartedAt:  &started,
			Vehicle: models.Vehicle{
				Make:     "Honda",
				Model:    "Civic",
				Customer: models.Customer{Name: "Lee"},
			},
		},
	}

	jobs := slices.Collect(CurrentJobs(active))

	assert.Len(t, jobs, 2)
	assert.Equal(t, uint(1), jobs[0].AppointmentID)
	assert.Equal(t, "Toyota Corolla", jobs[0].Vehicle)
	assert.Equal(t, "Dana", jobs[0].Customer)
	assert.Nil(t, jobs[0].StartedAt)
	assert.Equal(t, "Honda Civic", jobs[1].Vehicle)
	assert.Equal(t, &started, jobs[1].StartedAt)

	// the sequence restarts cleanly
	again := slices.Collect(CurrentJobs(active))
	assert.Equal(t, jobs, again)

	assert.Empty(t, slices.Collect(CurrentJobs(nil)))
}
