package internal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==== Clientes ====

type customerCreateRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	UserID  *uint  `json:"user_id"`
}

type customerUpdateRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

func CustomerCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateCustomerCreate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		requester := requesterFrom(c)
		ownerID := requester.ID
		// Only an admin may create on behalf of another owner.
		if req.UserID != nil && *req.UserID != requester.ID {
			if !requester.IsAdmin() {
				RespondError(c, http.StatusForbidden, "Forbidden")
				return
			}
			var owner User
			if err := db.First(&owner, *req.UserID).Error; err != nil {
				RespondError(c, http.StatusNotFound, "User not found.")
				return
			}
			ownerID = owner.ID
		}
		customer := Customer{
			Name:     req.Name,
			Address:  req.Address,
			Phone:    req.Phone,
			UserID:   ownerID,
			IsActive: true,
		}
		if err := db.Create(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, "Customer name already exists")
				return
			}
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func CustomersFindAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []Customer
		if err := db.Scopes(ownerScope(requesterFrom(c))).Find(&customers).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func CustomerFindOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func CustomerUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var req customerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateCustomerUpdate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		if req.Name != nil {
			customer.Name = *req.Name
		}
		if req.Address != nil {
			customer.Address = *req.Address
		}
		if req.Phone != nil {
			customer.Phone = *req.Phone
		}
		if req.IsActive != nil {
			customer.IsActive = *req.IsActive
		}
		if err := db.Save(&customer).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully"})
	}
}

func CustomerDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		// Deliveries, payments and subscriptions go with it (FK cascade).
		if err := db.Delete(&customer).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
	}
}

func CustomersFindByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID := ParseUint(c.Param("user_id"), 0)
		if targetID == 0 {
			RespondError(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		if !requesterFrom(c).Allows(targetID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var customers []Customer
		if err := db.Where("user_id = ?", targetID).Find(&customers).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}
