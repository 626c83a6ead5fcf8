package internal

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
		"role":     "superuser",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation error", body["message"])
	errs := body["errors"].([]any)
	assert.Contains(t, errs, "name is required")
	assert.Contains(t, errs, "valid email is required")
	assert.Contains(t, errs, "password min 6 chars")
	assert.Contains(t, errs, "invalid role")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestApp(t)
	signup(t, r, "dup@example.com", RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Again",
		"email":    "dup@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

// A store fault on insert is not a conflict.
func TestRegisterStoreFault(t *testing.T) {
	r, db := newTestApp(t)
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_create", func(tx *gorm.DB) {
		tx.AddError(errors.New("store offline"))
	}))

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Dave",
		"email":    "dave@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginRoundTrip(t *testing.T) {
	r, db := newTestApp(t)
	id, token := signup(t, r, "alice@example.com", RoleAdmin)

	// the token embeds the registered identity
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*Claims)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)

	// the stored password is a hash, never the plaintext
	var user User
	require.NoError(t, db.First(&user, id).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestApp(t)
	signup(t, r, "bob@example.com", RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "bob@example.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersListAdminOnly(t *testing.T) {
	r, _ := newTestApp(t)
	_, adminToken := signup(t, r, "admin@example.com", RoleAdmin)
	_, userToken := signup(t, r, "plain@example.com", RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeList(t, w)
	require.Len(t, users, 2)
	for _, u := range users {
		_, leaked := u["password"]
		assert.False(t, leaked, "password hash must never be serialized")
	}
}

func TestUserUpdate(t *testing.T) {
	r, db := newTestApp(t)
	id, token := signup(t, r, "carol@example.com", RoleAdmin)

	w := doJSON(t, r, http.MethodPut, "/api/users/1", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "no updatable fields provided")

	w = doJSON(t, r, http.MethodPut, "/api/users/1", token, gin.H{"password": "newsecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var user User
	require.NoError(t, db.First(&user, id).Error)
	assert.NotEqual(t, "newsecret", user.Password)

	// the new password works, the old one does not
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carol@example.com", "password": "newsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carol@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserDeleteCascades(t *testing.T) {
	r, db := newTestApp(t)
	_, adminToken := signup(t, r, "admin@example.com", RoleAdmin)
	ownerID, ownerToken := signup(t, r, "owner@example.com", RoleUser)
	createCustomer(t, r, ownerToken, "Joe")
	createProduct(t, r, ownerToken, "Milk")

	w := doJSON(t, r, http.MethodDelete, "/api/users/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", ownerID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var customers, products int64
	db.Model(&Customer{}).Where("user_id = ?", ownerID).Count(&customers)
	db.Model(&Product{}).Where("user_id = ?", ownerID).Count(&products)
	assert.Zero(t, customers)
	assert.Zero(t, products)
}
