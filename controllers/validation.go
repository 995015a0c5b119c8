package controllers

import (
	"errors"

	"pos-service/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the enum checks used in request binding tags
// (order_status, table_status, menu_category, role).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	rules := map[string]func(string) bool{
		"order_status":  func(s string) bool { return models.OrderStatus(s).Valid() },
		"table_status":  func(s string) bool { return models.TableStatus(s).Valid() },
		"menu_category": func(s string) bool { return models.MenuCategory(s).Valid() },
	}
	for tag, valid := range rules {
		valid := valid
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			return err
		}
	}

	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().Int()).Valid()
	})
}
