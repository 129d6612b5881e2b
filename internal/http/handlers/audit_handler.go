package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slatecms/backend/internal/http/dto"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditHandler exposes the audit trail read-side. The trail is append-only;
// there is no write surface here.
type AuditHandler struct {
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewAuditHandler(auditRepo *repositories.AuditRepo, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo, log: log}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repositories.AuditFilter{
		Limit:  50,
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
	if v := c.Query("table"); v != "" {
		filter.TableName = &v
	}
	if v := c.Query("record_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid record_id"})
		}
		filter.RecordID = &id
	}

	entries, err := h.auditRepo.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
