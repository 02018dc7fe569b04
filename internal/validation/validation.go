package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagName matches gin's binding tag so request DTOs are validated the same way
// whether they arrive as a body or are produced by a JSON Patch.
const TagName = "binding"

var validate = newValidate()

var messages = map[string]string{
	"required":            "the field '%s' is required",
	"email":               "the field '%s' must be a valid email address",
	"e164":                "the field '%s' must be an E.164 phone number",
	"min":                 "the field '%s' must be at least %s",
	"oneof":               "the field '%s' must be one of [%s]",
	"escalation_interval": "the field '%s' must be a supported escalation interval",
}

func newValidate() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("escalation_interval", func(fl validator.FieldLevel) bool {
		label := fl.Field().String()
		return label == models.EscalationIntervalNone || models.ParseEscalationInterval(label) != 0
	})
}

// RegisterGin installs the custom rules on gin's default validator.
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Struct validates s and converts failures into a domain.ValidationError.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return ToDomain(err)
	}
	return nil
}

// ToDomain turns validator (or gin binding) errors into a domain.ValidationError.
func ToDomain(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ValidationError{Msg: err.Error(), Err: err}
	}
	msgs := Messages(verrs)
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, msgs[f])
	}
	field := ""
	if len(fields) == 1 {
		field = fields[0]
	}
	return domain.ValidationError{Field: field, Msg: strings.Join(parts, "; "), Err: err}
}

// Messages maps json field paths to readable messages.
func Messages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		name := fieldPath(e.Namespace())
		if tmpl, ok := messages[e.Tag()]; ok {
			if strings.Count(tmpl, "%s") == 2 {
				out[name] = fmt.Sprintf(tmpl, name, e.Param())
			} else {
				out[name] = fmt.Sprintf(tmpl, name)
			}
			continue
		}
		out[name] = fmt.Sprintf("the field '%s' is invalid: %s", name, e.Tag())
	}
	return out
}

// drop the struct name that prefixes every namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
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
