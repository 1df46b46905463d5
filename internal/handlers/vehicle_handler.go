package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// --------- Requests ---------

type CreateVehicleRequest struct {
	CustomerID   uint   `json:"customer_id" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required,min=1900"`
	VIN          string `json:"vin" binding:"required"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
}

type ReportProblemRequest struct {
	Description string `json:"description" binding:"required"`
}

// --------- Handlers ---------

func (h *VehicleHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	customerID := strings.TrimSpace(c.Query("customer_id"))

	q := h.db.Preload("Customer")

	if customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(vin) LIKE ? OR LOWER(license_plate) LIKE ?",
			like, like, like, like,
		)
	}

	var vehicles []models.Vehicle
	if err := q.Order("id ASC").Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Failed to list vehicles.")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.Preload("Customer").First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Failed to load vehicle.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, req.CustomerID).Error; err != nil {
		httperr.BadRequest(c, "customer_not_found", "Customer not found.")
		return
	}

	vin := strings.ToUpper(strings.TrimSpace(req.VIN))

	var count int64
	h.db.Model(&models.Vehicle{}).Where("vin = ?", vin).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "vin_already_exists", "A vehicle with this VIN already exists.")
		return
	}

	vehicle := models.Vehicle{
		CustomerID:   customer.ID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          vin,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Failed to create vehicle.")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// --------- Problems ---------

func (h *VehicleHandler) ListProblems(c *gin.Context) {
	id := c.Param("id")

	var problems []models.VehicleProblem
	if err := h.db.
		Where("vehicle_id = ?", id).
		Order("reported_date DESC").
		Find(&problems).Error; err != nil {
		httperr.Internal(c, "failed_to_list_problems", "Failed to list reported problems.")
		return
	}

	c.JSON(http.StatusOK, problems)
}

func (h *VehicleHandler) ReportProblem(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_vehicle", "Failed to load vehicle.")
		return
	}

	var req ReportProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	problem := models.VehicleProblem{
		VehicleID:   vehicle.ID,
		Description: req.Description,
	}

	if err := h.db.Create(&problem).Error; err != nil {
		httperr.Internal(c, "failed_to_report_problem", "Failed to save reported problem.")
		return
	}

	c.JSON(http.StatusCreated, problem)
}

func (h *VehicleHandler) ResolveProblem(c *gin.Context) {
	problemID := c.Param("problem_id")

	var problem models.VehicleProblem
	if err := h.db.First(&problem, problemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "problem_not_found", "Reported problem not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_problem", "Failed to load reported problem.")
		return
	}

	problem.Resolved = true

	if err := h.db.Save(&problem).Error; err != nil {
		httperr.Internal(c, "failed_to_update_problem", "Failed to save reported problem.")
		return
	}

	c.JSON(http.StatusOK, problem)
}
