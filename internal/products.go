package internal

import (
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==== Produtos ====
//
// Create and Update accept either a JSON body or a multipart form carrying
// the same fields plus an optional single "image" file.

type productCreateRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Unit  string   `json:"unit"`
}

type productUpdateRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Unit  *string  `json:"unit"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func formFloat(c *gin.Context, key string) *float64 {
	raw, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// unparseable input must surface as a range failure, not vanish
		v = math.Inf(-1)
	}
	return &v
}

func bindProductCreate(c *gin.Context) (productCreateRequest, *multipart.FileHeader, bool) {
	if isMultipart(c) {
		req := productCreateRequest{
			Name:  c.PostForm("name"),
			Price: formFloat(c, "price"),
			Unit:  c.PostForm("unit"),
		}
		file, _ := c.FormFile("image")
		return req, file, true
	}
	var req productCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, nil, false
	}
	return req, nil, true
}

func bindProductUpdate(c *gin.Context) (productUpdateRequest, *multipart.FileHeader, bool) {
	if isMultipart(c) {
		var req productUpdateRequest
		if v, ok := c.GetPostForm("name"); ok {
			req.Name = &v
		}
		if v, ok := c.GetPostForm("unit"); ok {
			req.Unit = &v
		}
		req.Price = formFloat(c, "price")
		file, _ := c.FormFile("image")
		return req, file, true
	}
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, nil, false
	}
	return req, nil, true
}

func ProductCreate(db *gorm.DB, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, file, ok := bindProductCreate(c)
		if !ok {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateProductCreate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		product := Product{
			Name:   req.Name,
			Price:  *req.Price,
			Unit:   req.Unit,
			UserID: requesterFrom(c).ID,
		}
		if file != nil {
			url, err := uploads.SaveProductImage(c, file)
			if err != nil {
				RespondInternal(c, err)
				return
			}
			product.ImageURL = url
		}
		if err := db.Create(&product).Error; err != nil {
			// compensate the file write, the record never landed
			uploads.Remove(product.ImageURL)
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func ProductsFindAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []Product
		if err := db.Scopes(ownerScope(requesterFrom(c))).Find(&products).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func ProductFindOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if !requesterFrom(c).Allows(product.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func ProductUpdate(db *gorm.DB, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if !requesterFrom(c).Allows(product.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		req, file, ok := bindProductUpdate(c)
		if !ok {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateProductUpdate(req, file != nil); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Unit != nil {
			product.Unit = *req.Unit
		}
		oldImage := ""
		if file != nil {
			url, err := uploads.SaveProductImage(c, file)
			if err != nil {
				RespondInternal(c, err)
				return
			}
			oldImage = product.ImageURL
			product.ImageURL = url
		}
		if err := db.Save(&product).Error; err != nil {
			// only a file written in this request is compensated; the row
			// still points at its previous image
			if file != nil {
				uploads.Remove(product.ImageURL)
			}
			RespondInternal(c, err)
			return
		}
		// the replaced file is unlinked only after the record is committed
		uploads.Remove(oldImage)
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

func ProductDelete(db *gorm.DB, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if !requesterFrom(c).Allows(product.UserID) {
			RespondError(c, http.StatusForbidden, "Forbidden")
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		uploads.Remove(product.ImageURL)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// ProductsFindByCustomer lists the catalog of the customer's owner.
func ProductsFindByCustomer(db *gorm.DB) gin.HandlerFunc {
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
		var products []Product
		if err := db.Where("user_id = ?", customer.UserID).Find(&products).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
