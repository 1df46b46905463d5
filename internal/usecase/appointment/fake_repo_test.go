package appointment

import (
	"context"
	"sync"
	"time"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

// fakeRepo is an in-memory Repository. mu guards the maps; txMu is held
// for the whole WithTx body, matching the serialization a database row
// lock gives the real repository. That makes the fake usable for the
// concurrency tests.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	shops        map[uint]*models.Shop
	vehicles     map[uint]*models.Vehicle
	problems     map[uint]*models.VehicleProblem
	appointments map[uint]*models.Appointment
	employees    map[uint]*models.Employee

	nextID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        map[uint]*models.Shop{},
		vehicles:     map[uint]*models.Vehicle{},
		problems:     map[uint]*models.VehicleProblem{},
		appointments: map[uint]*models.Appointment{},
		employees:    map[uint]*models.Employee{},
		nextID:       1,
	}
}

// --------- Seed helpers ---------

func (f *fakeRepo) addShop(name string) *models.Shop {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Shop{ID: f.nextID, Name: name, Timezone: "America/New_York"}
	f.nextID++
	f.shops[s.ID] = s
	return s
}

func (f *fakeRepo) addTechnician(shop *models.Shop, name, role string) *models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &models.Employee{ID: f.nextID, ShopID: shop.ID, Shop: *shop, Name: name, Role: role}
	f.nextID++
	f.employees[e.ID] = e
	return e
}

func (f *fakeRepo) addVehicle(make, model, customer string) *models.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := &models.Vehicle{
		ID:       f.nextID,
		Make:     make,
		Model:    model,
		Customer: models.Customer{Name: customer},
	}
	f.nextID++
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeRepo) addAppointment(vehicle *models.Vehicle, status domain.Status, techID *uint, date time.Time) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap := &models.Appointment{
		ID:                   f.nextID,
		VehicleID:            vehicle.ID,
		Vehicle:              *vehicle,
		Status:               string(status),
		AssignedTechnicianID: techID,
		Date:                 date,
	}
	if techID != nil {
		now := time.Now()
		ap.AssignedAt = &now
		if tech, ok := f.employees[*techID]; ok {
			ap.AssignedTechnician = tech
		}
	}
	f.nextID++
	f.appointments[ap.ID] = ap
	return ap
}

// --------- Repository ---------

func (f *fakeRepo) GetShopByID(ctx context.Context, id uint) (*models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.shops[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vehicles[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) GetVehicleProblemByID(ctx context.Context, id uint) (*models.VehicleProblem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.problems[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.Date.Before(start) && ap.Date.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetEmployeeByID(ctx context.Context, id uint) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) GetEmployeeForUpdate(ctx context.Context, id uint) (*models.Employee, error) {
	// txMu already provides the exclusion a row lock would
	return f.GetEmployeeByID(ctx, id)
}

func (f *fakeRepo) ListTechnicians(ctx context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Employee
	for _, e := range f.employees {
		if domain.IsTechnicianRole(e.Role) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountActiveForTechnician(ctx context.Context, technicianID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ap := range f.appointments {
		if ap.AssignedTechnicianID != nil &&
			*ap.AssignedTechnicianID == technicianID &&
			domain.Status(ap.Status).IsActive() {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountForTechnicianBetween(ctx context.Context, technicianID uint, start, end time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ap := range f.appointments {
		if ap.AssignedTechnicianID != nil &&
			*ap.AssignedTechnicianID == technicianID &&
			!ap.Date.Before(start) && ap.Date.Before(end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListActiveForTechnician(ctx context.Context, technicianID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.AssignedTechnicianID != nil &&
			*ap.AssignedTechnicianID == technicianID &&
			domain.Status(ap.Status).IsActive() {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}
