package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
	"github.com/questionbase/questionbase/api/internal/validator"
)

// DecodeAndValidate decodes a JSON body into v and validates it.
// Any failure is returned as an InvalidInput AppError.
func DecodeAndValidate(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			return appErr
		}
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is empty")
		}
		return apperrors.InvalidInput("Invalid request body: " + err.Error()).WithError(err)
	}
	if dec.More() {
		return apperrors.InvalidInput("Invalid request body: unexpected data after JSON object")
	}

	if err := validator.Validate(v); err != nil {
		return apperrors.InvalidInput(err.Error()).WithError(err)
	}
	return nil
}
