package dto

import domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"

// Field names mirror the dashboard consumers of the workload endpoints;
// renaming them breaks existing callers.

type TechnicianDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Shop string `json:"shop"`
}

type WorkloadDTO struct {
	CurrentAppointments int  `json:"current_appointments"`
	IsAvailable         bool `json:"is_available"`
	AppointmentsToday   int  `json:"appointments_today"`
	MaxCapacity         int  `json:"max_capacity"`
}

type TechnicianWorkloadDTO struct {
	Technician  TechnicianDTO       `json:"technician"`
	Workload    WorkloadDTO         `json:"workload"`
	CurrentJobs []domain.JobSummary `json:"current_jobs"`
}

type WorkloadSummaryDTO struct {
	TotalTechnicians     int    `json:"total_technicians"`
	AvailableTechnicians int    `json:"available_technicians"`
	BusyTechnicians      int    `json:"busy_technicians"`
	UtilizationRate      string `json:"utilization_rate"`
}

type WorkloadReportDTO struct {
	Summary     WorkloadSummaryDTO      `json:"summary"`
	Technicians []TechnicianWorkloadDTO `json:"technicians"`
}

type AvailableTechnicianDTO struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	CurrentWorkload   int    `json:"current_workload"`
	MaxCapacity       int    `json:"max_capacity"`
	AppointmentsToday int    `json:"appointments_today"`
}
