package controller

import (
	"ai-stemtutor-be/internal/dto"
	"ai-stemtutor-be/internal/pkg/serverutils"
	"ai-stemtutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AIController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) *AIController {
	return &AIController{aiService: aiService}
}

func (c *AIController) RegisterRoutes(router fiber.Router) {
	ai := router.Group("/ai/v1", serverutils.JwtMiddleware)
	ai.Post("/solve", c.SubmitSolve)
	ai.Post("/define", c.SubmitDefine)
	ai.Get("/interactions", c.ListInteractions)
	ai.Get("/interaction/:id", c.GetStatus)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return userId, nil
}

// SubmitSolve accepts a problem and returns 202 with the interaction id to
// poll. The actual solving happens in the background workers.
func (c *AIController) SubmitSolve(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := new(dto.SolveProblemRequest)
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.SubmitSolve(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Interaction submitted", res))
}

func (c *AIController) SubmitDefine(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := new(dto.DefineTermRequest)
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.SubmitDefine(ctx.Context(), userId, req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Interaction submitted", res))
}

func (c *AIController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	interactionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid interaction id")
	}

	res, err := c.aiService.GetStatus(ctx.Context(), userId, interactionId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Interaction status", res))
}

func (c *AIController) ListInteractions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.aiService.ListInteractions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Interaction history", res))
}
