package handlers

import (
	"github.com/finpoint/erp_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators attaches domain validations to gin's binding
// engine. The "vouchertype" tag accepts only known voucher type names.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("vouchertype", func(fl validator.FieldLevel) bool {
		return domain.VoucherType(fl.Field().String()).Valid()
	})
}
