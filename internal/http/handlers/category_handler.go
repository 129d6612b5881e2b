package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slatecms/backend/internal/http/dto"
	"github.com/slatecms/backend/internal/middleware"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	log             *zap.Logger
}

func NewCategoryHandler(categoryService *services.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, log: log}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	cat := &models.Category{
		Kind: req.Kind,
		Name: req.Name,
		Slug: req.Slug,
	}
	if req.Description != "" {
		cat.Description = &req.Description
	}

	actor := middleware.GetActor(c)
	if err := h.categoryService.Create(c.Context(), actor, cat); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: cat})
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.categoryService.GetBySlug(c.Context(), c.Params("kind"), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: cat})
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var kind *string
	if v := c.Query("kind"); v != "" {
		kind = &v
	}

	cats, err := h.categoryService.List(c.Context(), kind)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: cats})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	actor := middleware.GetActor(c)
	cat, err := h.categoryService.Update(c.Context(), actor, c.Params("kind"), c.Params("slug"), services.CategoryPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: cat})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if err := h.categoryService.Delete(c.Context(), actor, c.Params("kind"), c.Params("slug")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
