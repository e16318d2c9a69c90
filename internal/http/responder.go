package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/realestate-crm/internal/application"
)

var (
	errBadRequestBody      = errors.New("Ogiltigt format på begäran.")
	errInvalidID           = errors.New("Ogiltigt ID.")
	errInvalidDate         = errors.New("Ogiltigt datum. Använd formatet ÅÅÅÅ-MM-DD.")
	errMissingSessionToken = errors.New("Ange en sessionstoken.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).WarnContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_INVALID",
			Message:   "Sessionen är ogiltig. Logga in igen.",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   "Ange både e-postadress och lösenord.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: localizedStatusMessage(http.StatusNotFound)})
	case errors.Is(err, context.DeadlineExceeded):
		r.writeJSON(ctx, w, http.StatusGatewayTimeout, errorResponse{Message: localizedStatusMessage(http.StatusGatewayTimeout)})
	case errors.Is(err, context.Canceled):
		r.writeJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{Message: localizedStatusMessage(http.StatusServiceUnavailable)})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: localizedStatusMessage(http.StatusUnprocessableEntity),
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Begäran är felaktig."
	case http.StatusUnauthorized:
		return "Du måste logga in."
	case http.StatusNotFound:
		return "Posten kunde inte hittas."
	case http.StatusUnprocessableEntity:
		return "Uppgifterna innehåller fel."
	case http.StatusServiceUnavailable:
		return "Begäran avbröts."
	case http.StatusGatewayTimeout:
		return "Begäran tog för lång tid."
	default:
		return "Ett internt fel uppstod."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "type is invalid":
		return "Ogiltig typ."
	case "status is invalid":
		return "Ogiltig status."
	case "sort is invalid":
		return "Ogiltig sortering."
	case "to must be after from":
		return "Slutdatum måste vara efter startdatum."
	case "room_id is required":
		return "Mötesrum måste anges."
	case "room does not exist":
		return "Mötesrummet finns inte."
	case "title is required":
		return "Titel måste anges."
	case "date is required":
		return "Datum måste anges."
	case "date is invalid":
		return "Ogiltigt datum."
	case "start is required":
		return "Starttid måste anges."
	case "start is not a bookable slot":
		return "Starttiden är inte en bokningsbar tid."
	case "end is required":
		return "Sluttid måste anges."
	case "end is not a bookable slot":
		return "Sluttiden är inte en bokningsbar tid."
	case "end must be after start":
		return "Sluttiden måste vara efter starttiden."
	default:
		if strings.HasSuffix(message, " is invalid") {
			return "Ogiltigt värde."
		}
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
