// Package handler содержит HTTP-обработчики API сервиса проверки национальных кодов.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/nationalcode/internal/model"
)

const maxBodySize = 4 << 10

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	CheckNationalCode(ctx context.Context, input string) model.Verdict
}

// Handler реализует HTTP-обработчики API сервиса проверки национальных кодов.
type Handler struct {
	service Service
	logger  *zap.Logger
	metrics http.Handler
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
// metrics отдаёт метрики по /metrics и может быть nil.
func NewHandler(s Service, logger *zap.Logger, metrics http.Handler) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		metrics: metrics,
	}
}

type checkRequest struct {
	Code string `json:"code"`
}

// CheckCode проверяет национальный код из тела запроса: JSON {"code": "..."} или текст.
// Тело больше maxBodySize отклоняется с 413, а не обрезается.
func (h *Handler) CheckCode(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(string(body))

	if isJSON(r.Header.Get("Content-Type")) {
		var req checkRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		code = req.Code
	}

	h.writeVerdict(w, h.service.CheckNationalCode(r.Context(), code))
}

// GetCode проверяет национальный код, переданный в пути запроса.
func (h *Handler) GetCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	h.writeVerdict(w, h.service.CheckNationalCode(r.Context(), code))
}

// Ping отвечает на проверку доступности сервиса.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (h *Handler) writeVerdict(w http.ResponseWriter, verdict model.Verdict) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(verdict); err != nil {
		h.logger.Error("encode verdict error", zap.Error(err))
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
