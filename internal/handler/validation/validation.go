package validation

import (
	"reflect"
	"strings"
	"sync"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

var rules = map[string]validator.Func{
	"hhmm": func(fl validator.FieldLevel) bool {
		_, err := slot.ParseClockTime(fl.Field().String())
		return err == nil
	},
	"ymd": func(fl validator.FieldLevel) bool {
		_, err := slot.ParseDate(fl.Field().String())
		return err == nil
	},
	"phone10": func(fl validator.FieldLevel) bool {
		return booking.IsValidPhone(fl.Field().String())
	},
	"venue": func(fl validator.FieldLevel) bool {
		return slot.Venue(fl.Field().String()).IsValid()
	},
	"club": func(fl validator.FieldLevel) bool {
		return user.Club(fl.Field().String()).IsValid()
	},
}

// Register installs the custom tags on gin's validator and reports fields
// by their JSON names. Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errs.New("gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonName)
		for tag, fn := range rules {
			if regErr := v.RegisterValidation(tag, fn); regErr != nil {
				err = errs.Wrap(regErr, "register validation "+tag)
				return
			}
		}
	})
	return err
}

func jsonName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Details lists the failed fields of a binding error, or nil when err did
// not come from the validator.
func Details(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
