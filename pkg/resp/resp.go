package resp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"tower_backend/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSONResponse - пишет v как JSON с заданным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorMessage - ошибка клиента с текстом
func WriteErrorMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSONResponse(w, status, errorResponse{Error: msg})
}

// WriteError - статус по типу ошибки. Причина 5xx уходит в лог, клиенту нет
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		WriteErrorMessage(w, status, "internal error")
		return
	}

	WriteErrorMessage(w, status, err.Error())
}

// StatusFor - HTTP статус для ошибки сервиса
func StatusFor(err error) int {
	switch {
	case errors.Is(err, &model.InsufficientFundsError{}),
		errors.Is(err, &model.InvalidAmountError{}),
		errors.Is(err, &model.ValidationError{}):
		return http.StatusBadRequest
	case errors.Is(err, &model.InvalidStateError{}),
		errors.Is(err, &model.UserExistsError{}):
		return http.StatusConflict
	case errors.Is(err, &model.UnauthorizedError{}):
		return http.StatusUnauthorized
	case errors.Is(err, &model.UserNotFoundError{}):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
