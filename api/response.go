package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thedevsaddam/gojsonq/v2"
)

// Response is a successful gateway reply. Body is passed through unexamined.
type Response struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// numberDecoder keeps JSON numbers as json.Number so large token amounts
// survive extraction without float rounding
type numberDecoder struct{}

func (numberDecoder) Decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Value returns the raw value at a dotted path such as "result.result".
func (r *Response) Value(path string) (interface{}, error) {
	if r == nil {
		return nil, ErrFieldNotFound
	}
	if !json.Valid(r.Body) {
		return nil, &MalformedResponseError{StatusCode: r.StatusCode, Err: fmt.Errorf("invalid JSON body")}
	}
	jq := gojsonq.New(gojsonq.WithDecoder(numberDecoder{})).FromString(string(r.Body))
	v := jq.Find(path)
	if err := jq.Error(); err != nil {
		// gojsonq reports a missing node as an error
		return nil, fmt.Errorf("%w: %s (%v)", ErrFieldNotFound, path, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, path)
	}
	return v, nil
}

// Decimal returns the numeric value at path. Numeric strings are accepted.
func (r *Response) Decimal(path string) (decimal.Decimal, error) {
	v, err := r.Value(path)
	if err != nil {
		return decimal.Zero, err
	}
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value at %q is not numeric: %w", path, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not numeric: %v", path, v)
	}
}

// String returns the value at path as a string.
func (r *Response) String(path string) (string, error) {
	v, err := r.Value(path)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// Decode re-encodes the value at path into out.
func (r *Response) Decode(path string, out interface{}) error {
	v, err := r.Value(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to re-encode %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return nil
}
