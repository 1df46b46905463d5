package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/httpresp"
	uc "github.com/AutoRepairsHQ/shop-manager/internal/usecase/appointment"
)

type TechnicianHandler struct {
	workload  *uc.WorkloadSummary
	available *uc.AvailableTechnicians
}

func NewTechnicianHandler(
	workload *uc.WorkloadSummary,
	available *uc.AvailableTechnicians,
) *TechnicianHandler {
	return &TechnicianHandler{
		workload:  workload,
		available: available,
	}
}

// Workload reports every technician's current load, today's schedule and
// active jobs, plus shop-wide totals.
func (h *TechnicianHandler) Workload(c *gin.Context) {
	report, err := h.workload.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_workload", "Failed to build workload report.")
		return
	}

	httpresp.OK(c, report)
}

// Available lists only the technicians with room for another assignment.
func (h *TechnicianHandler) Available(c *gin.Context) {
	techs, err := h.available.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_available", "Failed to list available technicians.")
		return
	}

	httpresp.List(c, techs)
}
