package internal

import "strings"

// Validators collect every failing field's message; they never stop at the
// first problem. Update validators additionally reject payloads carrying no
// recognized field at all.

func isNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func validateRegister(req registerRequest) []string {
	var errs []string
	if !isNonEmpty(req.Name) {
		errs = append(errs, "name is required")
	}
	if !isNonEmpty(req.Email) || !IsValidEmail(req.Email) {
		errs = append(errs, "valid email is required")
	}
	if len(req.Password) < 6 {
		errs = append(errs, "password min 6 chars")
	}
	if req.Role != "" && !req.Role.Valid() {
		errs = append(errs, "invalid role")
	}
	return errs
}

func validateLogin(req loginRequest) []string {
	var errs []string
	if !isNonEmpty(req.Email) {
		errs = append(errs, "email is required")
	}
	if !isNonEmpty(req.Password) {
		errs = append(errs, "password is required")
	}
	return errs
}

func validateUserUpdate(req userUpdateRequest) []string {
	var errs []string
	if req.Name == nil && req.Email == nil && req.Password == nil && req.Role == nil {
		return append(errs, "no updatable fields provided")
	}
	if req.Name != nil && !isNonEmpty(*req.Name) {
		errs = append(errs, "name must be non-empty")
	}
	if req.Email != nil && !IsValidEmail(*req.Email) {
		errs = append(errs, "valid email is required")
	}
	if req.Password != nil && len(*req.Password) < 6 {
		errs = append(errs, "password min 6 chars")
	}
	if req.Role != nil && !req.Role.Valid() {
		errs = append(errs, "invalid role")
	}
	return errs
}

func validateCustomerCreate(req customerCreateRequest) []string {
	var errs []string
	if !isNonEmpty(req.Name) {
		errs = append(errs, "name is required")
	}
	if !isNonEmpty(req.Address) {
		errs = append(errs, "address is required")
	}
	if !isNonEmpty(req.Phone) {
		errs = append(errs, "phone is required")
	}
	return errs
}

func validateCustomerUpdate(req customerUpdateRequest) []string {
	var errs []string
	if req.Name == nil && req.Address == nil && req.Phone == nil && req.IsActive == nil {
		return append(errs, "no updatable fields provided")
	}
	if req.Name != nil && !isNonEmpty(*req.Name) {
		errs = append(errs, "name must be non-empty")
	}
	if req.Address != nil && !isNonEmpty(*req.Address) {
		errs = append(errs, "address must be non-empty")
	}
	if req.Phone != nil && !isNonEmpty(*req.Phone) {
		errs = append(errs, "phone must be non-empty")
	}
	return errs
}

func validateProductCreate(req productCreateRequest) []string {
	var errs []string
	if !isNonEmpty(req.Name) {
		errs = append(errs, "name is required")
	}
	if req.Price == nil || *req.Price < 0 {
		errs = append(errs, "price must be number >= 0")
	}
	if !isNonEmpty(req.Unit) {
		errs = append(errs, "unit is required")
	}
	return errs
}

func validateProductUpdate(req productUpdateRequest, hasImage bool) []string {
	var errs []string
	if req.Name == nil && req.Price == nil && req.Unit == nil && !hasImage {
		return append(errs, "no updatable fields provided")
	}
	if req.Name != nil && !isNonEmpty(*req.Name) {
		errs = append(errs, "name must be non-empty")
	}
	if req.Price != nil && *req.Price < 0 {
		errs = append(errs, "price must be number >= 0")
	}
	if req.Unit != nil && !isNonEmpty(*req.Unit) {
		errs = append(errs, "unit must be non-empty")
	}
	return errs
}

func validateDeliveryCreate(req deliveryCreateRequest) []string {
	var errs []string
	if req.CustomerID <= 0 {
		errs = append(errs, "customer_id must be positive integer")
	}
	if req.ProductID <= 0 {
		errs = append(errs, "product_id must be positive integer")
	}
	if req.ProductQuantity <= 0 {
		errs = append(errs, "product_quantity must be positive integer")
	}
	if !isNonEmpty(req.DeliveryDay) {
		errs = append(errs, "delivery_day is required")
	}
	return errs
}

func validateDeliveryUpdate(req deliveryUpdateRequest) []string {
	var errs []string
	if req.CustomerID == nil && req.ProductID == nil && req.ProductQuantity == nil && req.DeliveryDay == nil {
		return append(errs, "no updatable fields provided")
	}
	if req.CustomerID != nil && *req.CustomerID <= 0 {
		errs = append(errs, "customer_id must be positive integer")
	}
	if req.ProductID != nil && *req.ProductID <= 0 {
		errs = append(errs, "product_id must be positive integer")
	}
	if req.ProductQuantity != nil && *req.ProductQuantity <= 0 {
		errs = append(errs, "product_quantity must be positive integer")
	}
	if req.DeliveryDay != nil && !isNonEmpty(*req.DeliveryDay) {
		errs = append(errs, "delivery_day must be non-empty")
	}
	return errs
}

func validatePaymentCreate(req paymentCreateRequest) []string {
	var errs []string
	if req.CustomerID <= 0 {
		errs = append(errs, "customer_id must be positive integer")
	}
	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		errs = append(errs, "total_amount must be number >= 0")
	}
	if req.PaidAmount == nil || *req.PaidAmount < 0 {
		errs = append(errs, "paid_amount must be number >= 0")
	}
	return errs
}

func validatePaymentUpdate(req paymentUpdateRequest) []string {
	var errs []string
	if req.CustomerID == nil && req.TotalAmount == nil && req.PaidAmount == nil {
		return append(errs, "no updatable fields provided")
	}
	if req.CustomerID != nil && *req.CustomerID <= 0 {
		errs = append(errs, "customer_id must be positive integer")
	}
	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		errs = append(errs, "total_amount must be number >= 0")
	}
	if req.PaidAmount != nil && *req.PaidAmount < 0 {
		errs = append(errs, "paid_amount must be number >= 0")
	}
	return errs
}

func validateCustomerProductCreate(req customerProductCreateRequest) []string {
	var errs []string
	if req.CustomerID <= 0 {
		errs = append(errs, "customer_id must be positive integer")
	}
	if req.ProductID <= 0 {
		errs = append(errs, "product_id must be positive integer")
	}
	if req.Quantity <= 0 {
		errs = append(errs, "quantity must be positive int")
	}
	if req.Price == nil || *req.Price < 0 {
		errs = append(errs, "price must be number >= 0")
	}
	if !isNonEmpty(req.Unit) {
		errs = append(errs, "unit is required")
	}
	return req.Recurrence.validate(errs)
}

func validateCustomerProductUpdate(req customerProductUpdateRequest) []string {
	var errs []string
	if req.Quantity == nil && req.Price == nil && req.Unit == nil && !req.touchesRecurrence() {
		return append(errs, "no updatable fields provided")
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errs = append(errs, "quantity must be positive int")
	}
	if req.Price != nil && *req.Price < 0 {
		errs = append(errs, "price must be number >= 0")
	}
	if req.Unit != nil && !isNonEmpty(*req.Unit) {
		errs = append(errs, "unit must be non-empty")
	}
	return errs
}
