package internal

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Requester is the identity extracted from a verified token.
type Requester struct {
	ID   uint
	Role Role
}

func requesterFrom(c *gin.Context) Requester {
	return Requester{ID: c.GetUint("user_id"), Role: Role(c.GetString("role"))}
}

func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// Allows is the single authorize primitive: admin, or the resource's owner.
func (r Requester) Allows(ownerID uint) bool {
	return r.IsAdmin() || r.ID == ownerID
}

// customerOwner resolves the one-hop owner chain used by deliveries,
// payments and subscriptions. Callers must map gorm.ErrRecordNotFound to a
// 404 BEFORE authorizing, so a dangling reference never leaks existence.
func customerOwner(db *gorm.DB, customerID uint) (uint, error) {
	var customer Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		return 0, err
	}
	return customer.UserID, nil
}

// ownerScope filters list queries to the requester's rows; admins see all.
func ownerScope(r Requester) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if r.IsAdmin() {
			return db
		}
		return db.Where("user_id = ?", r.ID)
	}
}
