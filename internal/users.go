package internal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==== Usuário / Autenticação ====

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *Role   `json:"role"`
}

func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateRegister(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		role := req.Role
		if role == "" {
			role = RoleAdmin
		}
		user := User{Name: req.Name, Email: req.Email, Role: role}
		if err := user.SetPassword(req.Password); err != nil {
			RespondInternal(c, err)
			return
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, "Email already registered")
				return
			}
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
	}
}

func LoginHandler(db *gorm.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateLogin(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		var user User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			RespondError(c, http.StatusNotFound, "User not found.")
			return
		}
		if !user.CheckPassword(req.Password) {
			RespondError(c, http.StatusUnauthorized, "Invalid Password!")
			return
		}
		token, err := GenerateToken(secret, &user)
		if err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"accessToken": token,
		})
	}
}

func UsersFindAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []User
		if err := db.Find(&users).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func UserFindOne(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "User not found.")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UserUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			RespondError(c, http.StatusNotFound, "User not found.")
			return
		}
		var req userUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if errs := validateUserUpdate(req); len(errs) > 0 {
			RespondValidation(c, errs)
			return
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		// Hash-on-write: SetPassword is the only path to the stored field.
		if req.Password != nil {
			if err := user.SetPassword(*req.Password); err != nil {
				RespondInternal(c, err)
				return
			}
		}
		if err := db.Save(&user).Error; err != nil {
			RespondInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully!"})
	}
}

func UserDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&User{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			RespondInternal(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			RespondError(c, http.StatusNotFound, "User not found.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully!"})
	}
}
