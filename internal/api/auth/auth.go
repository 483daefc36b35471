package auth

import (
	"log/slog"
	"net/http"
	"time"
	dto "tower_backend/internal/api/dto/auth"
	"tower_backend/internal/converter"
	"tower_backend/internal/model"
	"tower_backend/internal/service"
	"tower_backend/pkg/req"
	"tower_backend/pkg/resp"
)

const (
	sessionCookie = "session_id"
	refreshCookie = "refresh_token"
)

type HandlerDeps struct {
	Serv       service.AuthService
	Logger     *slog.Logger
	RefreshTTL time.Duration // Время жизни cookies, равно времени жизни сессии
}

type Handler struct {
	serv       service.AuthService
	logger     *slog.Logger
	refreshTTL time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:       deps.Serv,
		logger:     deps.Logger,
		refreshTTL: deps.RefreshTTL,
	}
}

// Register создаёт пользователя, открывает сессию
// и возвращает access_token, session_id и refresh_token уходят в cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	h.setSessionCookies(w, data)

	resp.WriteJSONResponse(w, http.StatusCreated, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Login создаёт новую сессию и возвращает access_token с балансом
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Login, requestBody.Password)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	h.setSessionCookies(w, data)

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLoginResponse(data))
}

// Refresh выдает новый access_token по cookies session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, refreshToken, ok := sessionFromCookies(r)
	if !ok {
		resp.WriteError(w, r, h.logger, &model.UnauthorizedError{Msg: "no session cookies"})
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), sessionID, refreshToken)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		resp.WriteError(w, r, h.logger, &model.UnauthorizedError{Msg: "no session_id cookie"})
		return
	}

	if err = h.serv.Logout(r.Context(), c.Value); err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	deleteCookie(w, sessionCookie)
	deleteCookie(w, refreshCookie)

	w.WriteHeader(http.StatusNoContent)
}

func sessionFromCookies(r *http.Request) (sessionID, refreshToken string, ok bool) {
	s, err := r.Cookie(sessionCookie)
	if err != nil || s.Value == "" {
		return "", "", false
	}
	t, err := r.Cookie(refreshCookie)
	if err != nil || t.Value == "" {
		return "", "", false
	}
	return s.Value, t.Value, true
}

// setSessionCookies устанавливает cookies session_id и refresh_token
func (h *Handler) setSessionCookies(w http.ResponseWriter, data *model.AuthData) {
	maxAge := int(h.refreshTTL.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    data.SessionID,
		Path:     "/api",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    data.RefreshToken,
		Path:     "/api",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// deleteCookie удаляет cookie с заданным именем
func deleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/api",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
