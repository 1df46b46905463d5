package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

func TestStartAndCompleteWork(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop("Main Street Auto")
	tech := repo.addTechnician(shop, "Ana", "technician")
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")
	ap := repo.addAppointment(vehicle, domain.StatusAssigned, &tech.ID, time.Now())

	start := NewStartWork(repo, nil)
	complete := NewCompleteWork(repo, nil)

	started, err := start.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, started.PreviousStatus)
	assert.Equal(t, string(domain.StatusInProgress), started.Appointment.Status)
	require.NotNil(t, started.Appointment.StartedAt)

	completed, err := complete.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, completed.PreviousStatus)
	assert.Equal(t, string(domain.StatusCompleted), completed.Appointment.Status)
	require.NotNil(t, completed.Appointment.CompletedAt)

	// timestamps stay ordered through the workflow
	assert.False(t, completed.Appointment.CompletedAt.Before(*completed.Appointment.StartedAt))

	// the technician's slot is free again
	load, err := repo.CountActiveForTechnician(context.Background(), tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, load)
}

func TestStartWorkWithoutTechnician(t *testing.T) {
	repo := newFakeRepo()
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")
	ap := repo.addAppointment(vehicle, domain.StatusScheduled, nil, time.Now())

	start := NewStartWork(repo, nil)

	_, err := start.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "no_technician_assigned"))
}

func TestCompleteWorkFromWrongState(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop("Main Street Auto")
	tech := repo.addTechnician(shop, "Ana", "technician")
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")
	ap := repo.addAppointment(vehicle, domain.StatusAssigned, &tech.ID, time.Now())

	complete := NewCompleteWork(repo, nil)

	_, err := complete.Execute(context.Background(), ap.ID)
	ie, ok := httperr.AsInvalidState(err)
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusAssigned), ie.Current)

	// nothing persisted
	stored, _ := repo.GetAppointmentByID(context.Background(), ap.ID)
	assert.Equal(t, string(domain.StatusAssigned), stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop("Main Street Auto")
	tech := repo.addTechnician(shop, "Ana", "technician")
	vehicle := repo.addVehicle("Toyota", "Corolla", "Dana")

	cancel := NewCancelAppointment(repo, nil)

	for _, status := range []domain.Status{domain.StatusScheduled, domain.StatusAssigned, domain.StatusInProgress} {
		ap := repo.addAppointment(vehicle, status, &tech.ID, time.Now())

		result, err := cancel.Execute(context.Background(), ap.ID)
		require.NoError(t, err, "status %q", status)
		assert.Equal(t, status, result.PreviousStatus)
		assert.Equal(t, string(domain.StatusCancelled), result.Appointment.Status)
		assert.NotNil(t, result.Appointment.CancelledAt)
	}

	done := repo.addAppointment(vehicle, domain.StatusCompleted, &tech.ID, time.Now())
	_, err := cancel.Execute(context.Background(), done.ID)
	_, ok := httperr.AsInvalidState(err)
	assert.True(t, ok)
}

func TestWorkflowNotFound(t *testing.T) {
	repo := newFakeRepo()

	for name, execute := range map[string]func(context.Context, uint) (*WorkResult, error){
		"start":    NewStartWork(repo, nil).Execute,
		"complete": NewCompleteWork(repo, nil).Execute,
		"cancel":   NewCancelAppointment(repo, nil).Execute,
	} {
		_, err := execute(context.Background(), 42)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"), "%s", name)
	}
}

// failingRepo simulates a database outage on reads.
type failingRepo struct {
	*fakeRepo
	err error
}

func (r *failingRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return nil, r.err
}

func (r *failingRepo) GetEmployeeByID(ctx context.Context, id uint) (*models.Employee, error) {
	return nil, r.err
}

// TestRepositoryFailuresAreNotMaskedAsNotFound checks that an
// unexpected persistence error reaches the caller as-is instead of
// being reported as a missing record.
func TestRepositoryFailuresAreNotMaskedAsNotFound(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &failingRepo{fakeRepo: newFakeRepo(), err: dbErr}

	for name, execute := range map[string]func(context.Context, uint) (*WorkResult, error){
		"start":    NewStartWork(repo, nil).Execute,
		"complete": NewCompleteWork(repo, nil).Execute,
		"cancel":   NewCancelAppointment(repo, nil).Execute,
	} {
		_, err := execute(context.Background(), 1)
		assert.ErrorIs(t, err, dbErr, "%s", name)
		assert.False(t, httperr.IsBusiness(err, "appointment_not_found"), "%s", name)
	}

	assign := NewAssignTechnician(repo, nil, 3)
	_, err := assign.Execute(context.Background(), 1, 1)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, httperr.IsBusiness(err, "technician_not_found"))
}
