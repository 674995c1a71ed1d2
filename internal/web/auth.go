// Package web serves the cookie-based auth endpoints the browser client
// uses alongside the gRPC-Web bridge: login issues an httponly access
// token plus a rotating refresh token, refresh rotates, logout revokes.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"team-availability-api/internal/auth"
	"team-availability-api/internal/handler"
	"team-availability-api/internal/store"
	"team-availability-api/internal/wire"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
	refreshTTL    = 7 * 24 * time.Hour
)

type authRoutes struct {
	handler *handler.Handler
	store   *store.Store
	secret  string
}

func RegisterAuthRoutes(r *mux.Router, h *handler.Handler, st *store.Store, secret string) {
	a := &authRoutes{handler: h, store: st, secret: secret}
	r.HandleFunc("/auth/login", a.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", a.refresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", a.logout).Methods(http.MethodPost)
}

func (a *authRoutes) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}

	resp, err := a.handler.Login(r.Context(), &wire.LoginRequest{Email: body.Email, Password: body.Password})
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := a.store.CreateRefreshToken(r.Context(), resp.UserId, tokenHash, time.Now().Add(refreshTTL)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setAuthCookies(w, resp.Token, rawRefresh)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"userId": resp.UserId, "name": resp.Name})
}

func (a *authRoutes) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	rt, err := a.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		writeJSONError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := a.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, time.Now().Add(refreshTTL)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	accessTok, err := auth.MakeToken(rt.UserID, a.secret)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setAuthCookies(w, accessTok, newRaw)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"userId": rt.UserID})
}

func (a *authRoutes) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(refreshCookie); err == nil {
		if rt, err := a.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value)); err == nil {
			a.store.RevokeAllRefreshTokens(r.Context(), rt.UserID)
		}
	}
	clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func setAuthCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{
		Name: accessCookie, Value: accessTok,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: refreshCookie, Value: rawRefresh,
		HttpOnly: true, Path: "/auth/", SameSite: http.SameSiteLaxMode,
		MaxAge: int(refreshTTL / time.Second),
	})
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessCookie, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: refreshCookie, Value: "", Path: "/auth/", MaxAge: -1})
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
