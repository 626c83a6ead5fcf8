package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter assembles the full API against an explicit store handle, so
// tests can run it against their own database.
func NewRouter(db *gorm.DB, cfg Config) *gin.Engine {
	r := gin.Default()
	uploads := &UploadStore{Dir: cfg.UploadDir}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	api.POST("/auth/register", RegisterHandler(db))
	api.POST("/auth/login", LoginHandler(db, cfg.JWTSecret))

	auth := api.Group("", AuthMiddleware(cfg.JWTSecret))

	auth.GET("/users", RequireAdmin(db), UsersFindAll(db))
	auth.GET("/users/:id", UserFindOne(db))
	auth.PUT("/users/:id", UserUpdate(db))
	auth.DELETE("/users/:id", RequireAdmin(db), UserDelete(db))

	auth.POST("/customers", CustomerCreate(db))
	auth.GET("/customers", CustomersFindAll(db))
	auth.GET("/customers/:id", CustomerFindOne(db))
	auth.PUT("/customers/:id", CustomerUpdate(db))
	auth.DELETE("/customers/:id", CustomerDelete(db))
	auth.GET("/customers/by-user/:user_id", CustomersFindByUser(db))

	auth.POST("/products", ProductCreate(db, uploads))
	auth.GET("/products", ProductsFindAll(db))
	auth.GET("/products/:id", ProductFindOne(db))
	auth.PUT("/products/:id", ProductUpdate(db, uploads))
	auth.DELETE("/products/:id", ProductDelete(db, uploads))
	auth.GET("/products/by-customer/:customer_id", ProductsFindByCustomer(db))

	auth.POST("/customer-products", CustomerProductCreate(db))
	auth.GET("/customer-products/by-customer/:customer_id", CustomerProductsFindByCustomer(db))
	auth.PUT("/customer-products/:id", CustomerProductUpdate(db))
	auth.DELETE("/customer-products/:id", CustomerProductDelete(db))

	auth.POST("/deliveries", DeliveryCreate(db))
	auth.GET("/deliveries", DeliveriesFindAll(db))
	auth.GET("/deliveries/:id", DeliveryFindOne(db))
	auth.PUT("/deliveries/:id", DeliveryUpdate(db))
	auth.DELETE("/deliveries/:id", DeliveryDelete(db))

	auth.POST("/payments", PaymentCreate(db))
	auth.GET("/payments", PaymentsFindAll(db))
	auth.GET("/payments/:id", PaymentFindOne(db))
	auth.PUT("/payments/:id", PaymentUpdate(db))
	auth.DELETE("/payments/:id", PaymentDelete(db))
	auth.GET("/payments/by-customer/:customer_id", PaymentsFindByCustomer(db))

	return r
}
