package models

// Typed errors returned by the service layer. The HTTP helper maps each type
// to a status code, so handlers never inspect error strings.

type FieldErrors map[string]string

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
	Errors  FieldErrors
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorUnprocessableEntity struct {
	Message string
	Errors  FieldErrors
}

func (e ErrorUnprocessableEntity) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }
