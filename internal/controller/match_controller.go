package controller

import (
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type MatchController struct {
	matchService *service.MatchService
}

func NewMatchController(matchService *service.MatchService) *MatchController {
	return &MatchController{matchService: matchService}
}

// CreateMatch starts a match. The body is optional; when present it is a
// NewMatchRequest describing a custom position.
func (mc *MatchController) CreateMatch(c *fiber.Ctx) error {
	var req *service.NewMatchRequest
	if len(c.Body()) > 0 {
		req = new(service.NewMatchRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid match request: " + err.Error(),
			})
		}
	}

	matchID, state, err := mc.matchService.CreateMatch(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"matchId": matchID,
		"state":   state,
	})
}

func (mc *MatchController) GetState(c *fiber.Ctx) error {
	state, err := mc.matchService.GetState(c.Params("matchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (mc *MatchController) DeleteMatch(c *fiber.Ctx) error {
	if err := mc.matchService.DeleteMatch(c.Params("matchId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (mc *MatchController) Moves(c *fiber.Ctx) error {
	hints, err := mc.matchService.Moves(c.Params("matchId"), c.Params("square"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(hints)
}

func (mc *MatchController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move: " + err.Error(),
		})
	}

	result, err := mc.matchService.HandleMove(c.Params("matchId"), move)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (mc *MatchController) Promote(c *fiber.Ctx) error {
	var promotion ws.PromotePayload
	if err := c.BodyParser(&promotion); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion: " + err.Error(),
		})
	}

	result, err := mc.matchService.Promote(c.Params("matchId"), promotion.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
