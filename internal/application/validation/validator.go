// Package validation valida los formularios antes de que lleguen al store. Los errores
// se devuelven como *domain.ValidationError con un mensaje por campo.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
)

var skuPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validator envuelve validator.Validate con las reglas propias del inventario.
type Validator struct {
	v     *validator.Validate
	icons *icons.Registry
}

// New registra las reglas sku, category, status e icon. reg puede ser nil (catálogo por defecto).
func New(reg *icons.Registry) *Validator {
	if reg == nil {
		reg = icons.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	x := &Validator{v: v, icons: reg}
	mustRegister(v, "sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseCategory(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "status", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseStatus(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "icon", func(fl validator.FieldLevel) bool {
		return x.icons.Contains(entity.IconID(fl.Field().String()))
	})
	return x
}

// Product valida el formulario de producto.
func (x *Validator) Product(in dto.ProductInput) error {
	return x.Struct(in)
}

// Login valida email y contraseña (mínimo 6 caracteres).
func (x *Validator) Login(in dto.LoginRequest) error {
	return x.Struct(in)
}

// Struct valida cualquier DTO con etiquetas validate.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "", Message: err.Error()}}}
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return &domain.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "max":
		return "debe tener como máximo " + fe.Param() + " caracteres"
	case "min":
		return "debe tener al menos " + fe.Param() + " caracteres"
	case "gte":
		return "no puede ser negativo"
	case "email":
		return "no es un email válido"
	case "sku":
		return "solo admite letras, números, guion y guion bajo"
	case "category":
		return "categoría desconocida"
	case "status":
		return "estado desconocido"
	case "icon":
		return "icono desconocido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return "valor inválido"
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// decimalValue expone el decimal como float64 para que gte/lte funcionen sobre el precio.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
