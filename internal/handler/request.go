package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/domain"
	"github.com/ludo/bugtrack/internal/validate"
)

// decodeBody reads the request body as a JSON object. Absent or malformed
// bodies come back empty, so the empty-body gate rejects them.
func decodeBody(c echo.Context) validate.Body {
	body := validate.Body{}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return validate.Body{}
	}
	return body
}

// parseID parses the named path parameter as an integer identifier, failing
// with the endpoint's message on non-numeric values.
func parseID(c echo.Context, name, message string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domain.BadRequest(message)
	}
	return id, nil
}

// The extraction helpers below run after schema validation, so values that
// are present already have the declared shape.

func stringValue(body validate.Body, key string) (string, bool) {
	v, ok := body[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// stringPtrValue distinguishes an absent key (ok=false) from an explicit
// null (ok=true, nil pointer).
func stringPtrValue(body validate.Body, key string) (*string, bool) {
	v, ok := body[key]
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

func intValue(body validate.Body, key string) (int, bool) {
	v, ok := body[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return int(f), ok
}

// dateValue converts a validated ISO date string into its instant. Explicit
// null yields (nil, true), absent key (nil, false).
func dateValue(body validate.Body, key string) (*time.Time, bool) {
	v, ok := body[key]
	if !ok {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
