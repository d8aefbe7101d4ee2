package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var roomIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.:@-]{1,128}$`)

var aliases = map[string]string{
	"appstate":      "oneof=foreground background inactive",
	"silencepreset": "oneof=aggressive balanced relaxed never",
}

func init() {
	v, err := ginValidator()
	if err == nil {
		err = RegisterTags(v)
	}
	if err != nil {
		panic(err)
	}
}

// ValidateRoomID validates room ID format: 1-128 characters of letters,
// digits and _ . : @ -
func ValidateRoomID(fl validator.FieldLevel) bool {
	return roomIDRegex.MatchString(fl.Field().String())
}
