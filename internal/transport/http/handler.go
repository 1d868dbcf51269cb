package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chesstools/internal/core"
	"chesstools/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// RateLimit is the per-IP request budget per second, doubled in dev mode
func RateLimit(devMode bool) int {
	if devMode {
		return rateLimitRate * 2
	}
	return rateLimitRate
}

type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// NewFiberApp wires middleware and routes for the game and prime day API
func NewFiberApp(svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		// long-poll requests hold the connection up to service.WaitTimeout
		WriteTimeout: service.WaitTimeout + 5*time.Second,
		IdleTimeout:  30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// outside the limiter
	app.Get("/health", h.Health)

	api := app.Group("/api/v1", newRateLimiter(RateLimit(devMode)), contentTypeValidator, validationMiddleware)
	h.registerRoutes(api)

	return app
}

func (h *HTTPHandler) registerRoutes(api fiber.Router) {
	games := api.Group("/games")
	games.Post("", h.CreateGame)
	games.Get("/:gameId", h.GetGame)
	games.Delete("/:gameId", h.DeleteGame)
	games.Post("/:gameId/moves", h.MakeMove)
	games.Post("/:gameId/undo", h.UndoMove)
	games.Post("/:gameId/reset", h.ResetGame)
	games.Get("/:gameId/board", h.GetBoard)

	api.Post("/primeday", h.PrimeDay)
}

func newRateLimiter(maxReq int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          maxReq,
		Expiration:   time.Second,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	})
}

// clientIP keys the limiter on the first X-Forwarded-For hop, else the peer
func clientIP(c *fiber.Ctx) string {
	xff := c.Get("X-Forwarded-For")
	if xff == "" {
		return c.IP()
	}
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// contentTypeValidator rejects POST bodies that are not JSON
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Next()
	}
	if ct := c.Get(fiber.HeaderContentType); ct != "" && ct != fiber.MIMEApplicationJSON {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
			Error:   "unsupported media type",
			Code:    core.ErrInvalidContent,
			Details: "Content-Type must be application/json",
		})
	}
	return c.Next()
}

// customErrorHandler turns fiber errors (unknown route, bad method) into ErrorResponse
func customErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	resp := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		resp.Error = fe.Message
		switch status {
		case fiber.StatusNotFound:
			resp.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			resp.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			resp.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(status).JSON(resp)
}

func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
		"games":   h.svc.ActiveGames(),
	})
}
