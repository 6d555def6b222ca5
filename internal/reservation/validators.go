package reservation

import (
	"cinetix/internal/payments"
	"cinetix/internal/pricing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding validators used by the
// reservation DTOs. Called once at startup.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("paymentmethod", validatePaymentMethod); err != nil {
		return err
	}
	return v.RegisterValidation("seatclass", validateSeatClass)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return payments.IsValidMethod(fl.Field().String())
}

func validateSeatClass(fl validator.FieldLevel) bool {
	return pricing.SeatClass(fl.Field().String()).IsValid()
}
