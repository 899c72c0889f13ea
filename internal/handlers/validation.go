package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/worklet-dev/worklet/internal/tracking"
)

// RegisterValidations installs custom binding rules on gin's validator.
// "hhmm" accepts an estimated duration in H:MM form with a total above
// zero minutes.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("hhmm", validEstimate)
	}
}

func validEstimate(fl validator.FieldLevel) bool {
	minutes, err := tracking.ParseEstimate(fl.Field().String())
	return err == nil && minutes > 0
}
