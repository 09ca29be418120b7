package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio/api/internal/auth"
	"portfolio/api/internal/search"
)

// SessionCookie is the HttpOnly cookie the signed session token rides in.
const SessionCookie = "portfolio_session"

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.service.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/login" {
		s.handleLogin(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/logout" {
		_ = s.service.Logout(r.Context(), cookieToken(r))
		clearSessionCookie(w)
		writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out successfully"})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/auth/status" {
		token := cookieToken(r)
		if token == "" {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		session, err := s.service.SessionFromToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "username": session.Username})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/portfolio/public" {
		doc, err := s.service.Portfolio(r.Context())
		if err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, doc)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/search" {
		s.handleSearch(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/contact" {
		s.handleContact(w, r)
		return
	}

	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/uploads/") {
		s.handleAssetDownload(w, r)
		return
	}

	// Everything below requires a session.
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/change-password" {
		s.handleChangePassword(w, r, session)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/portfolio" {
		doc, err := s.service.Portfolio(r.Context())
		if err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, doc)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/portfolio" {
		var raw map[string]json.RawMessage
		if err := decodeBody(r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := s.service.SavePortfolio(r.Context(), raw, session.Username); err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Portfolio data saved successfully"})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/portfolio/export" {
		result, err := s.service.ExportPDF(r.Context())
		if err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
		w.Header().Set("Content-Type", result.MimeType)
		_, _ = w.Write(result.Data)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/assets" {
		s.handleAssetUpload(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/portfolio/history" {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := s.service.PortfolioHistory(limit)
		if err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"versions": entries})
		return
	}

	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/portfolio/history/") {
		hash := strings.TrimPrefix(r.URL.Path, "/api/portfolio/history/")
		if hash == "" || strings.Contains(hash, "/") {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		doc, err := s.service.PortfolioAt(hash)
		if err != nil {
			status, _, message := mapError(err)
			writeError(w, status, message)
			return
		}
		writeJSON(w, http.StatusOK, doc)
		return
	}

	writeError(w, http.StatusNotFound, "Not found")
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	resp := s.service.Search(search.Query{
		Text:    query.Get("q"),
		Section: query.Get("section"),
		Limit:   limit,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.service.ContactMessage(r.Context(), strings.TrimSpace(body.Name), strings.TrimSpace(body.Email), strings.TrimSpace(body.Message)); err != nil {
		status, _, message := mapError(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Message sent successfully"})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, expiresAt, err := s.service.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		status, _, message := mapError(err)
		writeError(w, status, message)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"username": body.Username})
}

func (s *HTTPServer) handleChangePassword(w http.ResponseWriter, r *http.Request, session Session) {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new passwords are required")
		return
	}
	if err := s.service.ChangePassword(r.Context(), session.Username, body.CurrentPassword, body.NewPassword); err != nil {
		status, _, message := mapError(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password changed successfully"})
}

func (s *HTTPServer) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A file form field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.service.UploadAsset(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		status, _, message := mapError(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

func (s *HTTPServer) handleAssetDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/uploads/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	obj, err := s.service.OpenAsset(r.Context(), name)
	if err != nil {
		status, _, message := mapError(err)
		writeError(w, status, message)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", obj.Size))
	_, _ = io.Copy(w, obj)
}

func (s *HTTPServer) requireSession(w http.ResponseWriter, r *http.Request) (Session, bool) {
	token := cookieToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return Session{}, false
	}
	session, err := s.service.SessionFromToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return Session{}, false
		}
		writeError(w, http.StatusInternalServerError, "Session lookup failed")
		return Session{}, false
	}
	return session, true
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	header.Set("Access-Control-Allow-Credentials", "true")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError emits the {error} body every failing endpoint uses.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return fmt.Errorf("empty body")
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func mapError(err error) (status int, code, message string) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message
	}
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, "NOT_FOUND", "Not found"
	}
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
		return http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error"
}
