package llm

import (
	"errors"
	"fmt"
)

// Kind классифицирует неуспешный вызов модели.
type Kind string

const (
	// KindHTTP — сервис ответил статусом вне 2xx.
	KindHTTP Kind = "http_error"
	// KindNetwork — HTTP-ответ так и не был получен.
	KindNetwork Kind = "network_error"
)

// ForwardError описывает неудачу одного вызова Forward.
// Detail передаётся пользователю как есть.
type ForwardError struct {
	Kind       Kind
	Detail     string
	StatusCode int
	Err        error
}

func (e *ForwardError) Error() string {
	if e.Kind == KindHTTP {
		return "Error: " + e.Detail
	}
	return "Exception occurred: " + e.Detail
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}

func newHTTPError(status int, body string) *ForwardError {
	return &ForwardError{
		Kind:       KindHTTP,
		Detail:     fmt.Sprintf("%d - %s", status, body),
		StatusCode: status,
	}
}

func newNetworkError(err error) *ForwardError {
	return &ForwardError{
		Kind:   KindNetwork,
		Detail: err.Error(),
		Err:    err,
	}
}

// IsHTTPError сообщает, что err — ответ сервиса с ошибочным статусом.
func IsHTTPError(err error) bool {
	return hasKind(err, KindHTTP)
}

// IsNetworkError сообщает, что err — транспортная ошибка.
func IsNetworkError(err error) bool {
	return hasKind(err, KindNetwork)
}

func hasKind(err error, kind Kind) bool {
	var fe *ForwardError
	return errors.As(err, &fe) && fe.Kind == kind
}
