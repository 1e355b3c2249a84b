package errors

import (
	"encoding/json"
)

// JSONOutput represents the JSON structure for error output
type JSONOutput struct {
	Status string        `json:"status"`
	Errors []*BuildError `json:"errors"`
}

// FormatErrorsAsJSON formats errors for tooling. Errors that are not
// BuildErrors are reported as internal configuration failures.
func FormatErrorsAsJSON(errs ...error) (string, error) {
	output := JSONOutput{
		Status: "success",
		Errors: make([]*BuildError, 0, len(errs)),
	}

	for _, err := range errs {
		if err == nil {
			continue
		}
		be, ok := As(err)
		if !ok {
			be = NewConfigurationError(ErrInvalidBuildScript).WithMessage("%s", err.Error())
		}
		output.Errors = append(output.Errors, be)
	}

	if len(output.Errors) > 0 {
		output.Status = "error"
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
