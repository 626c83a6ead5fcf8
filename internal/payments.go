package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==== Pagamentos ====

type paymentCreateRequest struct {
	CustomerID  int      `json:"customer_id"`
	TotalAmount *float64 `json:"total_amount"`
	PaidAmount  *float64 `json:"paid_amount"`
}

type paymentUpdateRequest struct {
	CustomerID  *int     `json:"customer_id"`
	TotalAmount *float64 `json:"total_amount"`
	PaidAmount  *float64 `json:"paid_amount"`
}

func PaymentCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validatePaymentCreate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		// Dangling customer answers 404 before any authorize step.
		ownerID, err := customerOwner(db, uint(req.CustomerID))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		if !requesterFrom(c).Allows(ownerID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		payment := Payment{
			CustomerID:  uint(req.CustomerID),
			TotalAmount: *req.TotalAmount,
			PaidAmount:  *req.PaidAmount,
		}
		if err := db.Create(&payment).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func PaymentsFindAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := requesterFrom(c)
		q := db
		if !requester.IsAdmin() {
			q = q.Joins("JOIN customers ON customers.id = payments.customer_id").
				Where("customers.user_id = ?", requester.ID)
		}
		var payments []Payment
		if err := q.Find(&payments).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func loadPayment(db *gorm.DB, id string) (*Payment, error) {
	var payment Payment
	if err := db.Preload("Customer").First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if payment.Customer == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func PaymentFindOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payment, err := loadPayment(db, c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		if !requesterFrom(c).Allows(payment.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

func PaymentUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payment, err := loadPayment(db, c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		requester := requesterFrom(c)
		if !requester.Allows(payment.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var req paymentUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validatePaymentUpdate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		if req.CustomerID != nil {
			ownerID, err := customerOwner(db, uint(*req.CustomerID))
			if err != nil {
				RespondError(c, http.StatusNotFound, "Customer not found")
				return
			}
			if !requester.Allows(ownerID) {
				RespondError(c, http.StatusForbidden, "Forbidden")
				return
			}
			payment.CustomerID = uint(*req.CustomerID)
		}
		if req.TotalAmount != nil {
			payment.TotalAmount = *req.TotalAmount
		}
		if req.PaidAmount != nil {
			payment.PaidAmount = *req.PaidAmount
		}
		payment.Customer = nil
		if err := db.Save(payment).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment updated successfully"})
	}
}

func PaymentDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payment, err := loadPayment(db, c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		if !requesterFrom(c).Allows(payment.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		if err := db.Delete(&Payment{}, payment.ID).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
	}
}

func PaymentsFindByCustomer(db *gorm.DB) gin.HandlerFunc {
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
		var payments []Payment
		if err := db.Where("customer_id = ?", customer.ID).Find(&payments).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
