package api

import (
	"context"
	"errors"
	"fmt"
)

// Envelope is the JSON body POSTed to every gateway endpoint
type Envelope struct {
	Network       string         `json:"network"`
	Blockchain    string         `json:"blockchain"`
	WalletAddress string         `json:"walletAddress"`
	Args          map[string]any `json:"args"`
}

// Kind selects the gateway endpoint class for an operation
type Kind string

const (
	// KindInvoke submits a transaction
	KindInvoke Kind = "invoke"
	// KindQuery is a read-only evaluation
	KindQuery Kind = "query"
)

// Operation identifies one contract method exposed through the gateway
type Operation struct {
	Kind   Kind
	Method string
}

// Endpoint returns the gateway URL for the operation on the given contract.
func (o Operation) Endpoint(baseURL, contractID string) string {
	return fmt.Sprintf("%s/v1/contract/kalp/%s/%s/%s", baseURL, o.Kind, contractID, o.Method)
}

// Transaction represents one entry of a contract's transaction history
type Transaction struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
	Time   int64  `json:"time"` // unix seconds
}

// GenericErrorMessage is used when a failed response carries no message.
const GenericErrorMessage = "Something went wrong"

// ErrInvalidEndpoint is returned before any request when the endpoint is not an absolute URL.
var ErrInvalidEndpoint = errors.New("api: endpoint must be a non-empty absolute URL")

// ErrFieldNotFound is returned when a response has no value at the requested path.
var ErrFieldNotFound = errors.New("api: field not found in response")

// NetworkError is a transport-level failure (DNS, refused connection, reset).
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx response from the gateway.
type RemoteError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *RemoteError) Error() string {
	return e.Message
}

// MalformedResponseError means the response body was not valid JSON.
type MalformedResponseError struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TimeoutError is returned when the call deadline passes before a response arrives.
type TimeoutError struct {
	Endpoint string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out", e.Endpoint)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }
