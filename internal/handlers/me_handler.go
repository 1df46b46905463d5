package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/middleware"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":                user.ID,
			"name":              user.Name,
			"email":             user.Email,
			"phone":             user.Phone,
			"role":              user.Role,
			"is_email_verified": user.IsEmailVerified,
		},
	}

	// Attach the linked profile, if any.
	var employee models.Employee
	if err := h.db.Preload("Shop").Where("user_id = ?", userID).First(&employee).Error; err == nil {
		resp["employee"] = gin.H{
			"id":    employee.ID,
			"name":  employee.Name,
			"role":  employee.Role,
			"shop":  employee.Shop.Name,
			"email": employee.Email,
		}
	}

	var customer models.Customer
	if err := h.db.Where("user_id = ?", userID).First(&customer).Error; err == nil {
		resp["customer"] = gin.H{
			"id":           customer.ID,
			"name":         customer.Name,
			"phone_number": customer.PhoneNumber,
			"email":        customer.Email,
		}
	}

	c.JSON(http.StatusOK, resp)
}
