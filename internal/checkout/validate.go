package checkout

import (
	"regexp"
	"strings"

	"github.com/safar/go-cart-checkout/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateForm(form models.ShippingForm) error {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", form.FullName},
		{"email", form.Email},
		{"address", form.Address},
		{"city", form.City},
		{"zip", form.Zip},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		return &ValidationError{Field: "email", Reason: "not a valid email address"}
	}

	return nil
}
