package catalog

import (
	"errors"
	"fmt"
)

// FetchKind classifies a FetchError by where the request failed.
type FetchKind string

const (
	// KindNetwork means the request could not be sent or timed out at the
	// transport level.
	KindNetwork FetchKind = "network"
	// KindHTTP means the service answered with a non-2xx status.
	KindHTTP FetchKind = "http"
	// KindParse means the response body was not valid JSON.
	KindParse FetchKind = "parse"
)

// FetchError is the single error type the catalog client returns for failed
// searches. Callers that only need a user-facing message can use Error();
// the kind and status code are there for callers that want to distinguish.
type FetchError struct {
	Kind       FetchKind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError unwraps err into a FetchError if there is one in the chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func networkError(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Message: "catalog request failed", Err: err}
}

func httpError(status int) *FetchError {
	return &FetchError{
		Kind:       KindHTTP,
		StatusCode: status,
		Message:    fmt.Sprintf("catalog returned status %d", status),
	}
}

func parseError(err error) *FetchError {
	return &FetchError{Kind: KindParse, Message: "failed to decode catalog response", Err: err}
}
