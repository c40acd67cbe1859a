package handler

import (
	"context"

	"github.com/fadilmartias/bgv-backend/internal/dto"
	"github.com/fadilmartias/bgv-backend/internal/usecase"
	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	uc *usecase.VerificationUsecase
}

func NewVerificationHandler(uc *usecase.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

// RegisterRoutes mounts the pipeline endpoints. The verify routes share one
// limiter, separate from the global one.
func (h *VerificationHandler) RegisterRoutes(app fiber.Router, limit fiber.Handler) {
	r := app.Group("/candidate")
	r.Post("/:id/verify", limit, h.Verify)
	r.Post("/:id/reverify/:kind", limit, h.Reverify)
	r.Post("/:id/approve", h.Approve)
	r.Post("/:id/reject", h.Reject)
}

// Verify runs the full pipeline. Individual check failures still answer 200;
// they are reported per check in the body.
func (h *VerificationHandler) Verify(c *fiber.Ctx) error {
	return h.run(c, "verification finished", h.uc.RunFullPipeline)
}

func (h *VerificationHandler) Reverify(c *fiber.Ctx) error {
	kind, err := verification.ParseCheckKind(c.Params("kind"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "unknown check"}, err)
	}
	return h.run(c, "check finished", func(ctx context.Context, id uint) (*verification.RunResult, error) {
		return h.uc.RunSingleCheck(ctx, id, kind)
	})
}

func (h *VerificationHandler) Approve(c *fiber.Ctx) error {
	return h.run(c, "candidate approved", h.uc.Approve)
}

func (h *VerificationHandler) Reject(c *fiber.Ctx) error {
	return h.run(c, "candidate rejected", h.uc.Reject)
}

func (h *VerificationHandler) run(c *fiber.Ctx, message string, fn func(context.Context, uint) (*verification.RunResult, error)) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	result, err := fn(c.UserContext(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "verification failed"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    dto.NewPipelineResultDTO(result),
	})
}
