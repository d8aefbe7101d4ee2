package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/imtaco/voicelink/internal/errors"
)

// Error is one failed field in a 400 response.
type Error struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FormatValidationError flattens binding failures. Errors that are not
// field failures, such as malformed JSON, yield nil.
func FormatValidationError(err error) []Error {
	verrs, ok := errors.As[validator.ValidationErrors](err)
	if !ok {
		return nil
	}
	out := make([]Error, 0, len(*verrs))
	for _, e := range *verrs {
		out = append(out, Error{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: e.Error(),
		})
	}
	return out
}
