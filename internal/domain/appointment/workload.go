package appointment

import (
	"iter"
	"strings"
	"time"

	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

// ===============================
// Technician Capacity
// ===============================

// DefaultCapacityLimit is the maximum number of active (assigned or
// in_progress) appointments a technician may hold at once.
const DefaultCapacityLimit = 3

// technicianRolePatterns decide which employees show up in workload and
// availability queries. Assignment itself does not filter by role.
var technicianRolePatterns = []string{"technician", "mechanic"}

func IsTechnicianRole(role string) bool {
	role = strings.ToLower(role)
	for _, p := range technicianRolePatterns {
		if strings.Contains(role, p) {
			return true
		}
	}
	return false
}

// IsAvailable applies the strict-less-than capacity rule: a technician
// holding exactly the limit is not available.
func IsAvailable(currentLoad int, limit int) bool {
	if limit <= 0 {
		limit = DefaultCapacityLimit
	}
	return currentLoad < limit
}

// ===============================
// Job Summaries
// ===============================

// JobSummary is one row of a technician's active-work dashboard.
type JobSummary struct {
	AppointmentID uint       `json:"appointment_id"`
	Vehicle       string     `json:"vehicle"`
	Customer      string     `json:"customer"`
	Status        string     `json:"status"`
	AssignedAt    *time.Time `json:"assigned_at"`
	StartedAt     *time.Time `json:"started_at"`
}

// CurrentJobs yields a summary per active appointment. The sequence is
// lazy and restartable; collect with slices.Collect when a slice is
// needed.
func CurrentJobs(active []models.Appointment) iter.Seq[JobSummary] {
	return func(yield func(JobSummary) bool) {
		for i := range active {
			ap := &active[i]
			if !yield(JobSummary{
				AppointmentID: ap.ID,
				Vehicle:       ap.Vehicle.Description(),
				Customer:      ap.Vehicle.Customer.Name,
				Status:        ap.Status,
				AssignedAt:    ap.AssignedAt,
				StartedAt:     ap.StartedAt,
			}) {
				return
			}
		}
	}
}
