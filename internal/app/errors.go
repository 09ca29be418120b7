package app

import "fmt"

// DomainError carries the HTTP status a failure maps to. The message is
// what the client sees in the {error} body.
type DomainError struct {
	Status  int
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func authError(message string) *DomainError {
	return domainError(401, "UNAUTHORIZED", message)
}

func validationError(message string) *DomainError {
	return domainError(400, "VALIDATION_ERROR", message)
}

func networkError(message string) *DomainError {
	return domainError(502, "UPSTREAM_ERROR", message)
}

func persistenceError(message string) *DomainError {
	return domainError(500, "PERSISTENCE_ERROR", message)
}
