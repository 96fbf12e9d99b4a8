// Package apperr définit la taxonomie d'erreurs du cœur métier. Les handlers
// HTTP traduisent le Kind en status code et renvoient le message tel quel.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidRequest
	KindUnauthorized
	KindInternal
)

// HTTPStatus traduit un Kind en status HTTP.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error porte un Kind et un message stable destiné à l'utilisateur final.
// L'erreur d'origine (collaborateur) reste accessible via Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidRequest(msg string) *Error { return &Error{Kind: KindInvalidRequest, Message: msg} }
func Unauthorized(msg string) *Error   { return &Error{Kind: KindUnauthorized, Message: msg} }

// Internal enveloppe une erreur de collaborateur (persistance, etc.).
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf retourne le Kind d'une erreur, ou KindInternal si l'erreur ne
// provient pas du cœur métier.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
