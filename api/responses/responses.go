package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/logger"
	"github.com/shopyard/shopyard-backend/pkg/types"
)

// clientCodes are the error codes whose domain message is safe to surface
// verbatim. Everything else falls back to the metadata's public message.
var clientCodes = map[pkgerrors.Code]struct{}{
	pkgerrors.CodeValidation:   {},
	pkgerrors.CodeForbidden:    {},
	pkgerrors.CodeUnauthorized: {},
	pkgerrors.CodeNotFound:     {},
	pkgerrors.CodeConflict:     {},
	pkgerrors.CodeIdempotency:  {},
	pkgerrors.CodeRateLimit:    {},
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.NewSuccess(data))
}

// WriteError renders err through the error-code metadata: status, public
// message, and details exposure are all decided by the code.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if _, ok := clientCodes[typed.Code()]; ok {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	var details any
	if meta.DetailsAllowed {
		details = typed.Details()
	}

	logError(ctx, logg, typed, err)
	writeJSON(w, meta.HTTPStatus, types.NewError(string(typed.Code()), msg, details))
}

func logError(ctx context.Context, logg *logger.Logger, typed *pkgerrors.Error, err error) {
	if logg == nil {
		return
	}
	fields := map[string]any{"error_code": string(typed.Code())}
	if typed.Code() == pkgerrors.CodeInternal {
		// Internal failures get the full cause chain and driver detail in the
		// log since none of it reaches the client.
		fields["dump"] = pkgerrors.Dump(err)
	}
	logg.Error(logg.WithFields(ctx, fields), "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL","message":"internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
