package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slatecms/backend/internal/http/dto"
	"github.com/slatecms/backend/internal/middleware"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

type SnippetHandler struct {
	snippetService *services.SnippetService
	log            *zap.Logger
}

func NewSnippetHandler(snippetService *services.SnippetService, log *zap.Logger) *SnippetHandler {
	return &SnippetHandler{snippetService: snippetService, log: log}
}

func (h *SnippetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSnippetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	sn := &models.Snippet{
		Name:     req.Name,
		Location: req.Location,
		Code:     req.Code,
		Enabled:  req.Enabled,
	}

	actor := middleware.GetActor(c)
	if err := h.snippetService.Create(c.Context(), actor, sn); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: sn})
}

func (h *SnippetHandler) List(c *fiber.Ctx) error {
	onlyEnabled := c.Query("enabled") == "true"
	snippets, err := h.snippetService.List(c.Context(), onlyEnabled)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: snippets})
}

func (h *SnippetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid snippet id"})
	}

	var req dto.UpdateSnippetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actor := middleware.GetActor(c)
	sn, err := h.snippetService.Update(c.Context(), actor, id, services.SnippetPatch{
		Name:     req.Name,
		Location: req.Location,
		Code:     req.Code,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sn})
}

func (h *SnippetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid snippet id"})
	}

	actor := middleware.GetActor(c)
	if err := h.snippetService.Delete(c.Context(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
