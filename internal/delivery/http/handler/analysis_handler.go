package handler

import (
	"errors"
	"strconv"
	"time"

	"career-studio/internal/delivery/http/dto"
	"career-studio/internal/delivery/http/middleware"
	"career-studio/internal/pkg/response"
	"career-studio/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

type analyzeRequest struct {
	Content string `json:"content"`
	IsURL   bool   `json:"is_url"`
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *AnalysisHandler) Create(c fiber.Ctx) error {
	userID, ok := userIDFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req analyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Analyze(c.Context(), userID, req.Content, req.IsURL)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toAnalysisResponse(out))
}

func (h *AnalysisHandler) Get(c fiber.Ctx) error {
	userID, ok := userIDFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.GetByID(c.Context(), id, userID)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toAnalysisResponse(out))
}

func (h *AnalysisHandler) List(c fiber.Ctx) error {
	userID, ok := userIDFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}

	out := make([]dto.AnalysisResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toAnalysisResponse(it))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toAnalysisResponse(out usecase.AnalysisOutput) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		AnalysisID: out.ID,
		Source:     out.Source,
		CreatedAt:  out.CreatedAt.UTC().Format(time.RFC3339),
		Result:     out.Result,
	}
}

func userIDFromLocals(c fiber.Ctx) (uuid.UUID, bool) {
	v := c.Locals(middleware.CtxUserIDKey)
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapAnalysisUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Analysis not found", nil, err)
	case errors.Is(err, usecase.ErrInternal):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
