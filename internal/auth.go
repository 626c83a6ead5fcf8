package internal

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Claims embutidas no token: id e role no momento do login
type Claims struct {
	UserID uint `json:"id"`
	Role   Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret []byte, u *User) (string, error) {
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthMiddleware rejects the request before it reaches any handler.
// A missing header and an invalid token answer with different statuses.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			RespondError(c, http.StatusForbidden, "No token provided!")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			RespondError(c, http.StatusUnauthorized, "Unauthorized! Invalid Token.")
			return
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			RespondError(c, http.StatusUnauthorized, "Unauthorized! Invalid Token.")
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RequireAdmin consults the CURRENT role in the store, not the claim cached
// in the token, so a demotion takes effect on the next admin-gated call.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user User
		if err := db.First(&user, c.GetUint("user_id")).Error; err != nil || user.Role != RoleAdmin {
			RespondError(c, http.StatusForbidden, "Require Admin Role!")
			return
		}
		c.Next()
	}
}
