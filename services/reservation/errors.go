package reservation

import "fmt"

// RequestError rejects a malformed request before it touches the store.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func NewRequestError(format string, args ...interface{}) error {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a lost race on a slot claim. ValidHours carries the
// freshly computed alternatives so the caller can retry or re-prompt.
type ConflictError struct {
	ProviderID string
	Date       string
	ValidHours []int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict for provider %s on %s", e.ProviderID, e.Date)
}

// OfferClaimedError reports that another provider claimed the offer first.
type OfferClaimedError struct {
	OfferID string
}

func (e *OfferClaimedError) Error() string {
	return fmt.Sprintf("offer %s was already claimed", e.OfferID)
}
