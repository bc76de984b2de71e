package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp.Body())

	switch code := resp.StatusCode(); {
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrServerUnavailable, code, body)
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("http %d: %s", code, body)
	}
}

// errorMessage prefers the Error field of a JSON error envelope and falls
// back to the raw body.
func errorMessage(raw []byte) string {
	var er models.ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return strings.TrimSpace(string(raw))
}
