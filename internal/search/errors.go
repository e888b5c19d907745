package search

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrFetchFailed is the one error category of the client: network failure,
// non-2xx status and malformed body all match it via errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError describes a failed request.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int    // 0 when no response was received
	Detail     string // "detail" field of the service's error body, if any
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// IsNotFound reports whether err is a 404 from the service. The search
// endpoint answers 404 when no listing matches the filters.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound
}

// missingDetails are the bodies the service sends when it turns its own
// "not found" for a single listing or its reviews into a 500.
var missingDetails = map[string]bool{
	"Erro ao buscar reserva":    true,
	"Erro ao buscar avaliações": true,
}

// IsMissingListing reports whether a Get or Reviews error means the listing
// does not exist: a 404, or the 500 the service answers with instead.
func IsMissingListing(err error) bool {
	if IsNotFound(err) {
		return true
	}
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusInternalServerError && missingDetails[fe.Detail]
}
