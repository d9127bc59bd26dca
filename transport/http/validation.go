package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/layer-3/marketauth/core"
)

// RegisterValidators adds the wallet_type binding tag to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("wallet_type", func(fl validator.FieldLevel) bool {
		_, err := core.ParseWalletType(fl.Field().String())
		return err == nil
	})
}
