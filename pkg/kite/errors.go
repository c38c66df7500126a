package kite

import "fmt"

// AuthError indicates a call made without a valid access token: either no
// token was set yet, or the upstream rejected the one we have.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// GatewayError is any other upstream rejection: bad symbol, insufficient
// margin, invalid order id, rate limit, network failure. The upstream
// message is carried verbatim; nothing is interpreted or retried here.
type GatewayError struct {
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *GatewayError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
	}
	return e.Message
}
