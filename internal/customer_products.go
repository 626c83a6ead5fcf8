package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==== Assinaturas (customer-products) ====

type customerProductCreateRequest struct {
	CustomerID int      `json:"customer_id"`
	ProductID  int      `json:"product_id"`
	Quantity   int      `json:"quantity"`
	Price      *float64 `json:"price"`
	Unit       string   `json:"unit"`
	Recurrence
}

type customerProductUpdateRequest struct {
	Quantity          *int           `json:"quantity"`
	Price             *float64       `json:"price"`
	Unit              *string        `json:"unit"`
	Frequency         *Frequency     `json:"frequency"`
	AlternateDayStart *string        `json:"alternate_day_start"`
	WeeklyDay         *string        `json:"weekly_day"`
	MonthlyDate       *int           `json:"monthly_date"`
	CustomWeekDays    datatypes.JSON `json:"custom_week_days"`
}

func (r customerProductUpdateRequest) touchesRecurrence() bool {
	return r.Frequency != nil || r.AlternateDayStart != nil || r.WeeklyDay != nil ||
		r.MonthlyDate != nil || r.CustomWeekDays != nil
}

func CustomerProductCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateCustomerProductCreate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		ownerID, err := customerOwner(db, uint(req.CustomerID))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		var product Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Product not found")
			return
		}
		requester := requesterFrom(c)
		if !requester.Allows(ownerID) || !requester.Allows(product.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		req.Recurrence.Normalize()
		row := CustomerProduct{
			CustomerID: uint(req.CustomerID),
			ProductID:  uint(req.ProductID),
			Quantity:   req.Quantity,
			Price:      *req.Price,
			Unit:       req.Unit,
			Recurrence: req.Recurrence,
		}
		if err := db.Create(&row).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

func CustomerProductsFindByCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer Customer
		if err := db.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var rows []CustomerProduct
		if err := db.Preload("Product").Where("customer_id = ?", customer.ID).Find(&rows).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func CustomerProductUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var row CustomerProduct
		if err := db.First(&row, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Record not found")
			return
		}
		ownerID, err := customerOwner(db, row.CustomerID)
		if err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(ownerID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var req customerProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateCustomerProductUpdate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		if req.Quantity != nil {
			row.Quantity = *req.Quantity
		}
		if req.Price != nil {
			row.Price = *req.Price
		}
		if req.Unit != nil {
			row.Unit = *req.Unit
		}
		// Recurrence merges whole: the merged descriptor must still be a
		// consistent tagged value before anything is stored.
		if req.touchesRecurrence() {
			merged := row.Recurrence
			if req.Frequency != nil {
				merged.Frequency = *req.Frequency
			}
			if req.AlternateDayStart != nil {
				merged.AlternateDayStart = req.AlternateDayStart
			}
			if req.WeeklyDay != nil {
				merged.WeeklyDay = req.WeeklyDay
			}
			if req.MonthlyDate != nil {
				merged.MonthlyDate = req.MonthlyDate
			}
			if req.CustomWeekDays != nil {
				merged.CustomWeekDays = req.CustomWeekDays
			}
			if errs := merged.validate(nil); len(errs) > 0 {
				RespondValidation(c, errs)
				return
			}
			merged.Normalize()
			row.Recurrence = merged
		}
		if err := db.Save(&row).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Updated"})
	}
}

func CustomerProductDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var row CustomerProduct
		if err := db.First(&row, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Record not found")
			return
		}
		ownerID, err := customerOwner(db, row.CustomerID)
		if err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(ownerID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		if err := db.Delete(&row).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}
