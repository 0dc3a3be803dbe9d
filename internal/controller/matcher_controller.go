package controller

import (
	"strconv"

	"profile-match-be/internal/dto"
	"profile-match-be/internal/pkg/serverutils"
	"profile-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMatcherController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	PopulateUsers(ctx *fiber.Ctx) error
	AddUser(ctx *fiber.Ctx) error
	AddNetwork(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
	RecommendForUser(ctx *fiber.Ctx) error
	SaveIndices(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
}

type matcherController struct {
	matcherService service.IMatcherService
}

func NewMatcherController(matcherService service.IMatcherService) IMatcherController {
	return &matcherController{
		matcherService: matcherService,
	}
}

func (c *matcherController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/populate_users", c.PopulateUsers)
	r.Post("/add_user", c.AddUser)
	r.Post("/add_network", c.AddNetwork)
	r.Post("/recommend", c.Recommend)
	r.Post("/recommendations/:userId", c.RecommendForUser)
	r.Post("/save_indices", c.SaveIndices)
	r.Get("/users", c.ListUsers)
	r.Delete("/users/:userId", c.DeleteUser)
}

func (c *matcherController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.matcherService.Health(ctx.Context()))
}

func (c *matcherController) PopulateUsers(ctx *fiber.Ctx) error {
	res, err := c.matcherService.PopulateUsers(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success populate users", res))
}

func (c *matcherController) AddUser(ctx *fiber.Ctx) error {
	var req dto.AddUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.matcherService.AddUser(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add user", res))
}

func (c *matcherController) AddNetwork(ctx *fiber.Ctx) error {
	var req dto.AddNetworkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.matcherService.AddNetwork(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add network", res))
}

func (c *matcherController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.matcherService.Recommend(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *matcherController) RecommendForUser(ctx *fiber.Ctx) error {
	userId, err := parseUserId(ctx)
	if err != nil {
		return err
	}

	topN := ctx.QueryInt("top_n", 0)
	networkFilter := ctx.Query("network_filter")

	res, err := c.matcherService.RecommendForUser(ctx.Context(), userId, topN, networkFilter)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *matcherController) SaveIndices(ctx *fiber.Ctx) error {
	if err := c.matcherService.SaveIndices(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success save indices", nil))
}

func (c *matcherController) ListUsers(ctx *fiber.Ctx) error {
	return ctx.JSON(c.matcherService.ListUsers(ctx.Context()))
}

func (c *matcherController) DeleteUser(ctx *fiber.Ctx) error {
	userId, err := parseUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.matcherService.DeleteUser(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}

func parseUserId(ctx *fiber.Ctx) (int64, error) {
	userId, err := strconv.ParseInt(ctx.Params("userId"), 10, 64)
	if err != nil || userId <= 0 {
		return 0, serverutils.NewBadRequestError("Invalid user id")
	}
	return userId, nil
}
