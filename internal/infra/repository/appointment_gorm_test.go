package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one named in-memory database per test, shared across the pool's
	// connections but isolated from other tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Shop{},
		&models.Customer{},
		&models.Vehicle{},
		&models.VehicleProblem{},
		&models.Employee{},
		&models.Appointment{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func seedTechnician(t *testing.T, db *gorm.DB, name, role string) *models.Employee {
	t.Helper()

	shop := models.Shop{Name: "Main Street Auto", Timezone: "America/New_York"}
	require.NoError(t, db.Create(&shop).Error)

	emp := models.Employee{ShopID: shop.ID, Name: name, Role: role}
	require.NoError(t, db.Create(&emp).Error)
	return &emp
}

func seedVehicle(t *testing.T, db *gorm.DB, vin string) *models.Vehicle {
	t.Helper()

	customer := models.Customer{Name: "Dana"}
	require.NoError(t, db.Create(&customer).Error)

	v := models.Vehicle{CustomerID: customer.ID, Make: "Toyota", Model: "Corolla", VIN: vin}
	require.NoError(t, db.Create(&v).Error)
	return &v
}

func TestCountActiveForTechnician(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	tech := seedTechnician(t, db, "Ana", "technician")
	vehicle := seedVehicle(t, db, "VIN-1")

	statuses := []domain.Status{
		domain.StatusAssigned,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusScheduled,
	}
	for _, s := range statuses {
		ap := models.Appointment{
			VehicleID: vehicle.ID,
			Date:      time.Now(),
			Status:    string(s),
		}
		if s != domain.StatusScheduled {
			ap.AssignedTechnicianID = &tech.ID
		}
		require.NoError(t, db.Create(&ap).Error)
	}

	count, err := repo.CountActiveForTechnician(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "only assigned and in_progress count")
}

func TestCountForTechnicianBetween(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	tech := seedTechnician(t, db, "Ana", "technician")
	vehicle := seedVehicle(t, db, "VIN-1")

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	dates := []time.Time{
		dayStart.Add(9 * time.Hour),   // inside
		dayStart.Add(17 * time.Hour),  // inside
		dayStart.Add(-1 * time.Hour),  // day before
		dayEnd.Add(30 * time.Minute),  // day after
	}
	for _, d := range dates {
		require.NoError(t, db.Create(&models.Appointment{
			VehicleID:            vehicle.ID,
			Date:                 d,
			Status:               string(domain.StatusAssigned),
			AssignedTechnicianID: &tech.ID,
		}).Error)
	}

	count, err := repo.CountForTechnicianBetween(ctx, tech.ID, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListTechniciansFiltersByRole(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	shop := models.Shop{Name: "Main Street Auto", Timezone: "America/New_York"}
	require.NoError(t, db.Create(&shop).Error)

	roles := map[string]bool{
		"technician":        true,
		"Senior Technician": true,
		"Lead Mechanic":     true,
		"receptionist":      false,
		"manager":           false,
	}
	for role := range roles {
		require.NoError(t, db.Create(&models.Employee{
			ShopID: shop.ID, Name: role, Role: role,
		}).Error)
	}

	techs, err := repo.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 3)
	for _, tech := range techs {
		assert.True(t, roles[tech.Role], "unexpected role %q", tech.Role)
		assert.Equal(t, shop.Name, tech.Shop.Name, "shop must be preloaded")
	}
}

func TestListActiveForTechnicianOrdersByAssignedAt(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	tech := seedTechnician(t, db, "Ana", "technician")
	vehicle := seedVehicle(t, db, "VIN-1")

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	later := base.Add(2 * time.Hour)

	for _, assignedAt := range []time.Time{later, base} {
		at := assignedAt
		require.NoError(t, db.Create(&models.Appointment{
			VehicleID:            vehicle.ID,
			Date:                 time.Now(),
			Status:               string(domain.StatusAssigned),
			AssignedTechnicianID: &tech.ID,
			AssignedAt:           &at,
		}).Error)
	}

	aps, err := repo.ListActiveForTechnician(ctx, tech.ID)
	require.NoError(t, err)
	require.Len(t, aps, 2)
	assert.True(t, aps[0].AssignedAt.Before(*aps[1].AssignedAt))
	assert.Equal(t, "Toyota", aps[0].Vehicle.Make, "vehicle must be preloaded")
	assert.Equal(t, "Dana", aps[0].Vehicle.Customer.Name, "customer must be preloaded")
}

func TestListAppointmentsForDay(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	vehicle := seedVehicle(t, db, "VIN-1")

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	require.NoError(t, db.Create(&models.Appointment{
		VehicleID: vehicle.ID,
		Date:      dayStart.Add(10 * time.Hour),
		Status:    string(domain.StatusScheduled),
	}).Error)
	require.NoError(t, db.Create(&models.Appointment{
		VehicleID: vehicle.ID,
		Date:      dayEnd.Add(time.Hour),
		Status:    string(domain.StatusScheduled),
	}).Error)

	aps, err := repo.ListAppointmentsForDay(ctx, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, aps, 1)
	assert.Equal(t, "Toyota Corolla", aps[0].Vehicle.Description())
}

func TestCreateAndUpdateAppointment(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	vehicle := seedVehicle(t, db, "VIN-1")

	ap := &models.Appointment{
		VehicleID: vehicle.ID,
		Date:      time.Now(),
		Status:    string(domain.StatusScheduled),
	}
	require.NoError(t, repo.CreateAppointment(ctx, ap))
	require.NotZero(t, ap.ID)

	ap.Status = string(domain.StatusCancelled)
	now := time.Now()
	ap.CancelledAt = &now
	require.NoError(t, repo.UpdateAppointment(ctx, ap))

	got, err := repo.GetAppointmentByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.NotNil(t, got.CancelledAt)
}

func TestGetAppointmentPreloadsTechnicianShop(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	tech := seedTechnician(t, db, "Ana", "technician")
	vehicle := seedVehicle(t, db, "VIN-1")

	ap := &models.Appointment{
		VehicleID:            vehicle.ID,
		Date:                 time.Now(),
		Status:               string(domain.StatusAssigned),
		AssignedTechnicianID: &tech.ID,
	}
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	got, err := repo.GetAppointmentByID(ctx, ap.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTechnician)

	// the shop rides along so callers can resolve its timezone
	assert.Equal(t, "Main Street Auto", got.AssignedTechnician.Shop.Name)
	assert.Equal(t, "America/New_York", got.AssignedTechnician.Shop.Timezone)
}

func TestGettersReportMissingRows(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	_, err := repo.GetAppointmentByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetEmployeeByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetVehicleByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
