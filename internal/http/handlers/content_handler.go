package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slatecms/backend/internal/http/dto"
	"github.com/slatecms/backend/internal/middleware"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

type ContentHandler struct {
	contentService *services.ContentService
	log            *zap.Logger
}

func NewContentHandler(contentService *services.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{contentService: contentService, log: log}
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actor := middleware.GetActor(c)
	content, err := h.contentService.Create(c.Context(), actor, services.CreateContentInput{
		Type:     c.Params("type"),
		Slug:     req.Slug,
		Title:    req.Title,
		Data:     models.JSONDoc(req.Data),
		Metadata: models.JSONDoc(req.Metadata),
		Status:   req.Status,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: content})
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	content, err := h.contentService.GetBySlug(c.Context(), c.Params("type"), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: content})
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	filter := repositories.ContentFilter{
		Type:   c.Params("type"),
		Limit:  20,
		Offset: 0,
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	items, err := h.contentService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	patch := models.ContentPatch{
		Slug:          req.Slug,
		Title:         req.Title,
		Data:          models.JSONDoc(req.Data),
		Metadata:      models.JSONDoc(req.Metadata),
		Status:        req.Status,
		ScheduledAt:   req.ScheduledAt,
		ChangeSummary: req.ChangeSummary,
	}

	actor := middleware.GetActor(c)
	content, err := h.contentService.Update(c.Context(), actor, c.Params("type"), c.Params("slug"), patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: content})
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if err := h.contentService.Delete(c.Context(), actor, c.Params("type"), c.Params("slug")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ContentHandler) Restore(c *fiber.Ctx) error {
	var req dto.RestoreContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Version < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "version must be >= 1"})
	}

	actor := middleware.GetActor(c)
	content, err := h.contentService.Restore(c.Context(), actor, c.Params("type"), c.Params("slug"), req.Version)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RestoreResponse{
		Content:     content,
		FromVersion: req.Version,
		NewVersion:  content.Version,
	}})
}

func (h *ContentHandler) History(c *fiber.Ctx) error {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	revs, err := h.contentService.GetHistory(c.Context(), c.Params("type"), c.Params("slug"), limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: revs})
}

// HistoryByID serves the history of deleted records, whose slugs no longer
// resolve to a live row.
func (h *ContentHandler) HistoryByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid content id"})
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	revs, err := h.contentService.GetHistoryByID(c.Context(), c.Params("type"), id, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: revs})
}
