package validation

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/imtaco/voicelink/internal/errors"
)

const ErrEngine errors.Code = "validation.engine"

// ginValidator returns the validator behind gin's binding layer.
func ginValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.Newf(ErrEngine, "unexpected binding engine %T", binding.Validator.Engine())
	}
	return v, nil
}

// RegisterTags installs the voicelink tags and reports fields by their JSON
// names.
func RegisterTags(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("roomid", ValidateRoomID); err != nil {
		return errors.Wrap(ErrEngine, err, "register roomid")
	}
	for tag, alias := range aliases {
		v.RegisterAlias(tag, alias)
	}
	return nil
}

func RegisterGin(tag string, fn validator.Func) error {
	v, err := ginValidator()
	if err != nil {
		return err
	}
	return v.RegisterValidation(tag, fn)
}

func RegisterGinAlias(tag string, alias string) error {
	v, err := ginValidator()
	if err != nil {
		return err
	}
	v.RegisterAlias(tag, alias)
	return nil
}

func jsonName(f reflect.StructField) string {
	for _, key := range []string{"json", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
