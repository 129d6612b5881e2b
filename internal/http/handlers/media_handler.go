package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slatecms/backend/internal/http/dto"
	"github.com/slatecms/backend/internal/middleware"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

type MediaHandler struct {
	mediaService *services.MediaService
	log          *zap.Logger
}

func NewMediaHandler(mediaService *services.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, log: log}
}

func (h *MediaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	asset := &models.MediaAsset{
		Filename:    req.Filename,
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
		StoragePath: req.StoragePath,
		AltText:     req.AltText,
	}

	actor := middleware.GetActor(c)
	if err := h.mediaService.Create(c.Context(), actor, asset); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *MediaHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid media id"})
	}

	asset, err := h.mediaService.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	limit, offset := 20, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	assets, err := h.mediaService.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
}

func (h *MediaHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid media id"})
	}

	var req dto.UpdateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actor := middleware.GetActor(c)
	asset, err := h.mediaService.Update(c.Context(), actor, id, services.MediaPatch{
		Filename: req.Filename,
		AltText:  req.AltText,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid media id"})
	}

	actor := middleware.GetActor(c)
	if err := h.mediaService.Delete(c.Context(), actor, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
