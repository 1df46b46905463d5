package appointment

import (
	"time"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Each action validates the source state, mutates the appointment and
// stamps the matching timestamp exactly once. Timestamps already set are
// never rewritten, so assigned_at <= started_at <= completed_at holds for
// the life of the row.

// Assign points the appointment at a technician. A scheduled appointment
// moves to assigned; an already-assigned appointment keeps its status and
// only the technician reference and assigned_at change (reassignment).
func Assign(ap *models.Appointment, technicianID uint, now time.Time) error {
	current := Status(ap.Status)
	if current.IsTerminal() {
		return httperr.InvalidState(current, StatusScheduled, StatusAssigned)
	}
	if !CanTransition(current, StatusAssigned) {
		return httperr.InvalidState(current, StatusScheduled, StatusAssigned)
	}

	ap.AssignedTechnicianID = &technicianID
	ap.AssignedAt = &now
	ap.Status = string(StatusAssigned)
	return nil
}

// StartWork moves an assigned appointment to in_progress.
func StartWork(ap *models.Appointment, now time.Time) error {
	if ap.AssignedTechnicianID == nil {
		return httperr.ErrBusiness("no_technician_assigned")
	}
	current := Status(ap.Status)
	if current != StatusAssigned {
		return httperr.InvalidState(current, StatusAssigned)
	}

	ap.StartedAt = &now
	ap.Status = string(StatusInProgress)
	return nil
}

// CompleteWork moves an in_progress appointment to completed. Completed
// appointments no longer count against the technician's capacity.
func CompleteWork(ap *models.Appointment, now time.Time) error {
	current := Status(ap.Status)
	if current != StatusInProgress {
		return httperr.InvalidState(current, StatusInProgress)
	}

	ap.CompletedAt = &now
	ap.Status = string(StatusCompleted)
	return nil
}

// Cancel is reachable from any non-terminal state.
func Cancel(ap *models.Appointment, now time.Time) error {
	current := Status(ap.Status)
	if current.IsTerminal() {
		return httperr.InvalidState(current, StatusScheduled, StatusAssigned, StatusInProgress)
	}

	ap.CancelledAt = &now
	ap.Status = string(StatusCancelled)
	return nil
}
