package validate

import (
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Kind classifies the value a schema field accepts.
type Kind int

const (
	// String accepts a non-empty string.
	String Kind = iota
	// NullableString accepts null or any string.
	NullableString
	// Int accepts a JSON number with no fractional part.
	Int
	// Enum accepts a string listed in Field.Values.
	Enum
	// Date accepts null or an ISO-8601 string that round-trips exactly.
	Date
	// Email accepts a string with an email shape (non-space run, '@',
	// non-space run containing '.'). Permissive on purpose, not RFC.
	Email
)

// Field declares the accepted value for one body key.
type Field struct {
	Kind   Kind
	Values []string
	// MatchField, when set, requires the named sibling key to be present
	// and its value to equal this one.
	MatchField string
}

// Schema declares the accepted value per body key for one endpoint. Keys not
// declared in the schema are ignored here; the allow-list gate rejects them
// before values are checked.
type Schema map[string]Field

// emailShape mirrors the permissive \S+@\S+\.\S+ check.
const emailShape = `^\S+@\S+\.\S+$`

var emailRe = regexp.MustCompile(emailShape)

var check = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	return v
}

// Check reports whether every declared key present in the body carries a
// valid value. A single bad field fails the whole body.
func (s Schema) Check(body Body) bool {
	for key, field := range s {
		value, ok := body[key]
		if !ok {
			continue
		}
		if !field.accepts(value, body) {
			return false
		}
	}
	return true
}

func (f Field) accepts(value any, body Body) bool {
	if f.MatchField != "" {
		sibling, ok := body[f.MatchField]
		if !ok || sibling != value {
			return false
		}
	}

	switch f.Kind {
	case String:
		str, ok := value.(string)
		return ok && check.Var(str, "min=1") == nil

	case NullableString:
		if value == nil {
			return true
		}
		_, ok := value.(string)
		return ok

	case Int:
		num, ok := value.(float64)
		return ok && num == math.Trunc(num)

	case Enum:
		str, ok := value.(string)
		return ok && contains(f.Values, str)

	case Date:
		if value == nil {
			return true
		}
		str, ok := value.(string)
		return ok && IsISODate(str)

	case Email:
		str, ok := value.(string)
		return ok && check.Var(str, "emailshape") == nil

	default:
		return false
	}
}
