package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/mcauth/pkg/authsdk"
	"github.com/aussiebroadwan/mcauth/pkg/httpx"
)

// decodeBody reads a JSON request body and writes the matching error
// response when it cannot. It reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := httpx.DecodeJSON(r, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, httpx.ErrContentType):
		authsdk.ErrInvalidContentType.WriteError(w)
	default:
		authsdk.ErrInvalidBody.WriteError(w)
	}
	return false
}
