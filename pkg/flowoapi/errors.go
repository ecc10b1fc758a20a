package flowoapi

import (
	"errors"
	"net/http"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

// ToError translates a transport failure into the gateway's coded error,
// keeping the upstream's human-readable message intact so the UI can show it
// verbatim.
func ToError(err error) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := pkgerrors.CodeUpstream
		switch statusErr.StatusCode() {
		case http.StatusBadRequest:
			code = pkgerrors.CodeValidation
		case http.StatusUnauthorized:
			code = pkgerrors.CodeUnauthorized
		case http.StatusForbidden:
			code = pkgerrors.CodeForbidden
		case http.StatusNotFound:
			code = pkgerrors.CodeNotFound
		case http.StatusConflict:
			code = pkgerrors.CodeConflict
		}
		return pkgerrors.Wrap(code, err, statusErr.Error())
	}

	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "flowo api unreachable")
}
