package service

import (
	"strings"

	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/model"
)

// Validation rules are tables of (field name, accessor) pairs so the rule set
// stays inspectable and testable apart from the transport layer.

var requiredFields = []struct {
	name    string
	present func(*dto.CheckoutRequest) bool
}{
	{"shipping", func(r *dto.CheckoutRequest) bool { return r.Shipping != nil }},
	{"payment_method", func(r *dto.CheckoutRequest) bool { return r.PaymentMethod != nil }},
	{"items", func(r *dto.CheckoutRequest) bool { return r.Items != nil }},
	{"totalPrice", func(r *dto.CheckoutRequest) bool { return r.TotalPrice != nil }},
	{"tax", func(r *dto.CheckoutRequest) bool { return r.Tax != nil }},
	{"shippingCost", func(r *dto.CheckoutRequest) bool { return r.ShippingCost != nil }},
}

var shippingFields = []struct {
	name  string
	value func(*dto.ShippingInfo) string
}{
	{"firstName", func(s *dto.ShippingInfo) string { return s.FirstName }},
	{"lastName", func(s *dto.ShippingInfo) string { return s.LastName }},
	{"email", func(s *dto.ShippingInfo) string { return s.Email }},
	{"phone", func(s *dto.ShippingInfo) string { return s.Phone }},
	{"address", func(s *dto.ShippingInfo) string { return s.Address }},
	{"city", func(s *dto.ShippingInfo) string { return s.City }},
	{"state", func(s *dto.ShippingInfo) string { return s.State }},
	{"zip", func(s *dto.ShippingInfo) string { return s.Zip }},
}

var cardFields = []struct {
	name  string
	value func(*dto.CardDetails) string
}{
	{"cardName", func(c *dto.CardDetails) string { return c.CardName }},
	{"cardNumber", func(c *dto.CardDetails) string { return c.CardNumber }},
	{"expiry", func(c *dto.CardDetails) string { return c.Expiry }},
	{"cvv", func(c *dto.CardDetails) string { return c.CVV }},
}

// validateCheckout runs every pre-transaction rule and returns the normalized
// payment method. No database access happens here.
func validateCheckout(req *dto.CheckoutRequest) (string, error) {
	for _, f := range requiredFields {
		if !f.present(req) {
			return "", validationErrorf("Missing required field: %s", f.name)
		}
	}

	method := strings.ToLower(*req.PaymentMethod)
	if method != model.PaymentMethodCard && method != model.PaymentMethodCOD {
		return "", validationErrorf("payment_method must be 'card' or 'cod'")
	}

	if len(req.Items) == 0 {
		return "", validationErrorf("Items must be a non-empty list")
	}

	for _, f := range shippingFields {
		if strings.TrimSpace(f.value(req.Shipping)) == "" {
			return "", validationErrorf("Shipping %s is required and cannot be empty", f.name)
		}
	}

	if method == model.PaymentMethodCard {
		if req.CardDetails == nil {
			return "", validationErrorf("Card cardName is required")
		}
		for _, f := range cardFields {
			if strings.TrimSpace(f.value(req.CardDetails)) == "" {
				return "", validationErrorf("Card %s is required", f.name)
			}
		}

		number := strings.ReplaceAll(req.CardDetails.CardNumber, " ", "")
		if len(number) < 13 || len(number) > 19 {
			return "", validationErrorf("Invalid card number")
		}

		cvv := req.CardDetails.CVV
		if !allDigits(cvv) || (len(cvv) != 3 && len(cvv) != 4) {
			return "", validationErrorf("CVV must be 3 or 4 digits")
		}
	}

	return method, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
