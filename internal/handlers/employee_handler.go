package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/storage"
)

type EmployeeHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewEmployeeHandler(db *gorm.DB, uploader *storage.Uploader) *EmployeeHandler {
	return &EmployeeHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	ShopID      uint   `json:"shop_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	UserID      *uint  `json:"user_id"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Role        *string `json:"role,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Preload("Shop")

	if role != "" {
		q = q.Where("LOWER(role) LIKE ?", "%"+role+"%")
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var employees []models.Employee
	if err := q.Order("id ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Failed to list employees.")
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.Preload("Shop").First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Failed to load employee.")
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, req.ShopID).Error; err != nil {
		httperr.BadRequest(c, "shop_not_found", "Shop not found.")
		return
	}

	employee := models.Employee{
		ShopID:      shop.ID,
		Name:        req.Name,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		UserID:      req.UserID,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Failed to create employee.")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Failed to load employee.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.PhoneNumber != nil {
		employee.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		employee.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to save employee.")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UploadPicture converts the uploaded image to WebP and stores it in S3.
func (h *EmployeeHandler) UploadPicture(c *gin.Context) {
	id := c.Param("id")

	if !h.uploader.Enabled() {
		httperr.BadRequest(c, "storage_not_configured", "Picture storage is not configured.")
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Failed to load employee.")
		return
	}

	file, _, err := c.Request.FormFile("picture")
	if err != nil {
		httperr.BadRequest(c, "missing_picture", "A picture file is required.")
		return
	}
	defer file.Close()

	encoded, err := storage.EncodeWebP(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "File is not a valid JPEG or PNG image.")
		return
	}

	url, err := h.uploader.UploadEmployeePicture(c.Request.Context(), employee.ID, encoded)
	if err != nil {
		httperr.Internal(c, "failed_to_store_picture", "Failed to store picture.")
		return
	}

	employee.PictureURL = url
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to save employee.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          employee.ID,
		"picture_url": employee.PictureURL,
	})
}
