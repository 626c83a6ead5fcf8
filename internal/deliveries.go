package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==== Entregas ====

type deliveryCreateRequest struct {
	CustomerID      int    `json:"customer_id"`
	ProductID       int    `json:"product_id"`
	ProductQuantity int    `json:"product_quantity"`
	DeliveryDay     string `json:"delivery_day"`
}

type deliveryUpdateRequest struct {
	CustomerID      *int    `json:"customer_id"`
	ProductID       *int    `json:"product_id"`
	ProductQuantity *int    `json:"product_quantity"`
	DeliveryDay     *string `json:"delivery_day"`
}

func DeliveryCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deliveryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateDeliveryCreate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		var customer Customer
		if err := db.First(&customer, req.CustomerID).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Customer not found")
			return
		}
		var product Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Product not found")
			return
		}
		// Both owners must pass; differing owners only clear for an admin.
		requester := requesterFrom(c)
		if !requester.Allows(customer.UserID) || !requester.Allows(product.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		delivery := Delivery{
			CustomerID:      uint(req.CustomerID),
			ProductID:       uint(req.ProductID),
			ProductQuantity: req.ProductQuantity,
			DeliveryDay:     req.DeliveryDay,
		}
		if err := db.Create(&delivery).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, delivery)
	}
}

func DeliveriesFindAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := requesterFrom(c)
		q := db.Preload("Product")
		if !requester.IsAdmin() {
			q = q.Joins("JOIN customers ON customers.id = deliveries.customer_id").
				Where("customers.user_id = ?", requester.ID)
		}
		var deliveries []Delivery
		if err := q.Find(&deliveries).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, deliveries)
	}
}

// loadDelivery resolves the delivery together with its owning customer.
func loadDelivery(db *gorm.DB, id string) (*Delivery, error) {
	var delivery Delivery
	if err := db.Preload("Customer").First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if delivery.Customer == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &delivery, nil
}

func DeliveryFindOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		delivery, err := loadDelivery(db.Preload("Product"), c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Delivery not found")
			return
		}
		if !requesterFrom(c).Allows(delivery.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.JSON(http.StatusOK, delivery)
	}
}

func DeliveryUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		delivery, err := loadDelivery(db, c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Delivery not found")
			return
		}
		requester := requesterFrom(c)
		if !requester.Allows(delivery.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		var req deliveryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateDeliveryUpdate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		// A re-pointed reference is authorized against its own owner.
		if req.CustomerID != nil {
			var customer Customer
			if err := db.First(&customer, *req.CustomerID).Error; err != nil {
				RespondError(c, http.StatusNotFound, "Customer not found")
				return
			}
			if !requester.Allows(customer.UserID) {
				RespondError(c, http.StatusForbidden, "Forbidden")
				return
			}
			delivery.CustomerID = customer.ID
		}
		if req.ProductID != nil {
			var product Product
			if err := db.First(&product, *req.ProductID).Error; err != nil {
				RespondError(c, http.StatusNotFound, "Product not found")
				return
			}
			if !requester.Allows(product.UserID) {
				RespondError(c, http.StatusForbidden, "Forbidden")
				return
			}
			delivery.ProductID = product.ID
		}
		if req.ProductQuantity != nil {
			delivery.ProductQuantity = *req.ProductQuantity
		}
		if req.DeliveryDay != nil {
			delivery.DeliveryDay = *req.DeliveryDay
		}
		delivery.Customer = nil
		if err := db.Save(delivery).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery updated successfully"})
	}
}

func DeliveryDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		delivery, err := loadDelivery(db, c.Param("id"))
		if err != nil {
			RespondError(c, http.StatusNotFound, "Delivery not found")
			return
		}
		if !requesterFrom(c).Allows(delivery.Customer.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		if err := db.Delete(&Delivery{}, delivery.ID).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery deleted successfully"})
	}
}
