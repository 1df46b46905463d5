package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

type PartHandler struct {
	db *gorm.DB
}

func NewPartHandler(db *gorm.DB) *PartHandler {
	return &PartHandler{db: db}
}

// --------- Requests ---------

type CreatePartRequest struct {
	ShopID         uint   `json:"shop_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Category       string `json:"category"`
	PartNumber     string `json:"part_number" binding:"required"`
	Description    string `json:"description"`
	Manufacturer   string `json:"manufacturer"`
	WarrantyMonths int    `json:"warranty_months"`
	StockQuantity  int    `json:"stock_quantity"`
}

type UpdatePartRequest struct {
	Name           *string `json:"name,omitempty"`
	Category       *string `json:"category,omitempty"`
	Description    *string `json:"description,omitempty"`
	Manufacturer   *string `json:"manufacturer,omitempty"`
	WarrantyMonths *int    `json:"warranty_months,omitempty"`
	StockQuantity  *int    `json:"stock_quantity,omitempty"`
}

// --------- Handlers ---------

func (h *PartHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Part{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(part_number) LIKE ? OR LOWER(manufacturer) LIKE ?",
			like, like, like,
		)
	}

	var parts []models.Part
	if err := q.Order("id ASC").Find(&parts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_parts", "Failed to list parts.")
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) Create(c *gin.Context) {
	var req CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	partNumber := strings.ToUpper(strings.TrimSpace(req.PartNumber))

	var count int64
	h.db.Model(&models.Part{}).Where("part_number = ?", partNumber).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "part_number_already_exists", "A part with this part number already exists.")
		return
	}

	part := models.Part{
		ShopID:         req.ShopID,
		Name:           req.Name,
		Category:       strings.ToLower(req.Category),
		PartNumber:     partNumber,
		Description:    req.Description,
		Manufacturer:   req.Manufacturer,
		WarrantyMonths: req.WarrantyMonths,
		StockQuantity:  req.StockQuantity,
	}

	if err := h.db.Create(&part).Error; err != nil {
		httperr.Internal(c, "failed_to_create_part", "Failed to create part.")
		return
	}

	c.JSON(http.StatusCreated, part)
}

func (h *PartHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var part models.Part
	if err := h.db.First(&part, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "part_not_found", "Part not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_part", "Failed to load part.")
		return
	}

	var req UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Category != nil {
		part.Category = strings.ToLower(*req.Category)
	}
	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.WarrantyMonths != nil {
		part.WarrantyMonths = *req.WarrantyMonths
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			httperr.BadRequest(c, "invalid_stock_quantity", "Stock quantity cannot be negative.")
			return
		}
		part.StockQuantity = *req.StockQuantity
	}

	if err := h.db.Save(&part).Error; err != nil {
		httperr.Internal(c, "failed_to_update_part", "Failed to save part.")
		return
	}

	c.JSON(http.StatusOK, part)
}
