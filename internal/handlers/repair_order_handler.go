package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

type RepairOrderHandler struct {
	db *gorm.DB
}

func NewRepairOrderHandler(db *gorm.DB) *RepairOrderHandler {
	return &RepairOrderHandler{db: db}
}

// --------- Requests ---------

type RepairOrderPartInput struct {
	PartID                 uint `json:"part_id" binding:"required"`
	Quantity               int  `json:"quantity" binding:"required,min=1"`
	WarrantyOverrideMonths *int `json:"warranty_override_months"`
}

type RepairOrderServiceInput struct {
	ServiceID              uint `json:"service_id" binding:"required"`
	WarrantyOverrideMonths *int `json:"warranty_override_months"`
}

type CreateRepairOrderRequest struct {
	VehicleID uint                      `json:"vehicle_id" binding:"required"`
	Notes     string                    `json:"notes"`
	Parts     []RepairOrderPartInput    `json:"parts"`
	Services  []RepairOrderServiceInput `json:"services"`
}

// --------- Handlers ---------

func (h *RepairOrderHandler) List(c *gin.Context) {
	vehicleID := c.Query("vehicle_id")

	q := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("Parts.Part").
		Preload("Services.Service")

	if vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}

	var orders []models.RepairOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_repair_orders", "Failed to list repair orders.")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *RepairOrderHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var order models.RepairOrder
	if err := h.db.
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("Parts.Part").
		Preload("Services.Service").
		First(&order, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "repair_order_not_found", "Repair order not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_repair_order", "Failed to load repair order.")
		return
	}

	c.JSON(http.StatusOK, order)
}

// Create builds the order and decrements part stock in one transaction,
// so two orders cannot consume the same last unit.
func (h *RepairOrderHandler) Create(c *gin.Context) {
	var req CreateRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, req.VehicleID).Error; err != nil {
		httperr.BadRequest(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	var created models.RepairOrder

	err := h.db.Transaction(func(tx *gorm.DB) error {
		order := models.RepairOrder{
			VehicleID: vehicle.ID,
			Notes:     req.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.Parts {
			var part models.Part
			if err := tx.First(&part, item.PartID).Error; err != nil {
				return httperr.ErrBusiness("part_not_found")
			}
			if part.StockQuantity < item.Quantity {
				return httperr.ErrBusiness("insufficient_stock")
			}

			part.StockQuantity -= item.Quantity
			if err := tx.Save(&part).Error; err != nil {
				return err
			}

			line := models.RepairOrderPart{
				RepairOrderID:          order.ID,
				PartID:                 part.ID,
				Quantity:               item.Quantity,
				WarrantyOverrideMonths: item.WarrantyOverrideMonths,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		for _, item := range req.Services {
			var service models.Service
			if err := tx.First(&service, item.ServiceID).Error; err != nil {
				return httperr.ErrBusiness("service_not_found")
			}

			line := models.RepairOrderService{
				RepairOrderID:          order.ID,
				ServiceID:              service.ID,
				WarrantyOverrideMonths: item.WarrantyOverrideMonths,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		created = order
		return nil
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "part_not_found"):
			httperr.BadRequest(c, "part_not_found", "One of the parts does not exist.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "One of the services does not exist.")
		case httperr.IsBusiness(err, "insufficient_stock"):
			httperr.BadRequest(c, "insufficient_stock", "Not enough stock for one of the parts.")
		default:
			httperr.Internal(c, "failed_to_create_repair_order", "Failed to create repair order.")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}
