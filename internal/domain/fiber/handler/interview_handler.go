package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/interview-api/internal/dto"
	"github.com/prepwise/interview-api/internal/middleware"
	"github.com/prepwise/interview-api/internal/response"
	"github.com/prepwise/interview-api/internal/usecase"
	"github.com/prepwise/interview-api/internal/util"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/interviews", middleware.Identity())
	api.Post("/start", middleware.RateLimiter(10, 1*time.Minute), h.Start)
	api.Post("/submit", middleware.RateLimiter(10, 1*time.Minute), h.Submit)
	api.Get("/history", h.History)

	app.Post("/api/admin/seed-topics", middleware.Identity(), h.SeedTopics)
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	ownerID := c.Locals(middleware.UserIDKey).(string)
	interview, err := h.uc.Start(c.Context(), ownerID, req.Domain, req.Difficulty)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusForError(err),
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview started successfully",
		Data: dto.StartInterviewResponse{
			InterviewID: interview.ID,
			Questions:   interview.Questions,
			Domain:      interview.Domain,
			Difficulty:  interview.Difficulty,
		},
	})
}

func (h *InterviewHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.InterviewID == "" || req.Answers == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "interviewId and answers are required",
		})
	}

	requesterID := c.Locals(middleware.UserIDKey).(string)
	interview, err := h.uc.Submit(c.Context(), req.InterviewID, requesterID, req.Answers)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusForError(err),
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview submitted successfully",
		Data: dto.SubmitInterviewResponse{
			InterviewID:  interview.ID,
			Scores:       interview.Scores,
			OverallScore: interview.OverallScore,
			Feedback:     interview.Feedback,
		},
	})
}

func (h *InterviewHandler) History(c *fiber.Ctx) error {
	ownerID := c.Locals(middleware.UserIDKey).(string)
	result, err := h.uc.History(c.Context(), ownerID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusForError(err),
			Message: "failed to load interview history",
		}, err)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total := len(result.Interviews)
	from := (page - 1) * pageSize
	if from > total {
		from = total
	}
	to := from + pageSize
	if to > total {
		to = total
	}

	summaries := make([]dto.InterviewSummaryDTO, 0, to-from)
	for _, interview := range result.Interviews[from:to] {
		summaries = append(summaries, dto.InterviewSummaryDTO{
			ID:           interview.ID,
			Domain:       interview.Domain,
			Difficulty:   interview.Difficulty,
			Status:       interview.Status,
			OverallScore: interview.OverallScore,
			CreatedAt:    interview.CreatedAt,
			CompletedAt:  interview.CompletedAt,
		})
	}

	totalPages := int64(0)
	if total > 0 {
		totalPages = int64((total + pageSize - 1) / pageSize)
	}
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: int64(total),
		HasMore:    to < total,
		From:       from + 1,
		To:         to,
	}
	if total == 0 {
		pagination.From = 0
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get interview history",
		Data:       fiber.Map{"interviews": summaries, "statistics": result.Statistics},
		Pagination: pagination,
	})
}

func (h *InterviewHandler) SeedTopics(c *fiber.Ctx) error {
	count, err := h.uc.SeedTopics(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusForError(err),
			Message: "failed to seed topics",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success seed topics",
		Data:    fiber.Map{"seeded": count},
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrRateLimited), errors.Is(err, usecase.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrMisconfigured), errors.Is(err, usecase.ErrUnparseable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
