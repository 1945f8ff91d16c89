package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mul-meong/backend-feed/internal/domain"
	apperr "github.com/mul-meong/backend-feed/internal/errors"
)

// FeedService is the slice of the coordinator the handlers need.
type FeedService interface {
	CreateFeed(ctx context.Context, cmd domain.CreateFeedCommand) (*domain.FeedView, error)
	GetFeed(ctx context.Context, feedID string) (*domain.FeedView, error)
	UpdateFeed(ctx context.Context, cmd domain.UpdateFeedCommand) error
	UpdateFeedStatus(ctx context.Context, cmd domain.UpdateStatusCommand) error
	UpdateFeedHashtags(ctx context.Context, cmd domain.UpdateHashtagsCommand) error
	DeleteFeed(ctx context.Context, feedID string) error
}

type Handlers struct {
	svc FeedService
}

func NewHandlers(svc FeedService) *Handlers {
	return &Handlers{svc: svc}
}

type mediaInput struct {
	MediaURL    string `json:"media_url"`
	MediaType   string `json:"media_type"`
	Description string `json:"description"`
}

func (h *Handlers) createFeed(c *fiber.Ctx) error {
	var req struct {
		MemberID   string       `json:"member_uuid"`
		Title      string       `json:"title"`
		Content    string       `json:"content"`
		CategoryID int64        `json:"category_id"`
		Hashtags   []string     `json:"hashtags"`
		MediaList  []mediaInput `json:"media_list"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.MemberID == "" || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "member_uuid and title required"})
	}

	cmd := domain.CreateFeedCommand{
		MemberID:   req.MemberID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Hashtags:   req.Hashtags,
	}
	for _, m := range req.MediaList {
		cmd.Media = append(cmd.Media, domain.MediaInput{
			MediaURL:    m.MediaURL,
			MediaType:   domain.MediaType(m.MediaType),
			Description: m.Description,
		})
	}

	view, err := h.svc.CreateFeed(c.Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"status": "ok", "data": view})
}

func (h *Handlers) getFeed(c *fiber.Ctx) error {
	view, err := h.svc.GetFeed(c.Context(), c.Params("feed_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "data": view})
}

func (h *Handlers) updateFeed(c *fiber.Ctx) error {
	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		CategoryID *int64  `json:"category_id"`
		Visibility *string `json:"visibility"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	cmd := domain.UpdateFeedCommand{
		FeedID:     c.Params("feed_id"),
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}
	if req.Visibility != nil {
		v := domain.Visibility(*req.Visibility)
		if v != domain.VisibilityVisible && v != domain.VisibilityHidden {
			return c.Status(400).JSON(fiber.Map{"error": "invalid visibility"})
		}
		cmd.Visibility = &v
	}

	if err := h.svc.UpdateFeed(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) updateFeedStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	st := domain.Status(req.Status)
	if st != domain.StatusActive && st != domain.StatusInactive {
		return c.Status(400).JSON(fiber.Map{"error": "invalid status"})
	}

	cmd := domain.UpdateStatusCommand{FeedID: c.Params("feed_id"), Status: st}
	if err := h.svc.UpdateFeedStatus(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) updateFeedHashtags(c *fiber.Ctx) error {
	var req struct {
		Title      *string  `json:"title"`
		Content    *string  `json:"content"`
		CategoryID *int64   `json:"category_id"`
		Visibility *string  `json:"visibility"`
		Hashtags   []string `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	cmd := domain.UpdateHashtagsCommand{
		FeedID:     c.Params("feed_id"),
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Hashtags:   req.Hashtags,
	}
	if req.Visibility != nil {
		v := domain.Visibility(*req.Visibility)
		if v != domain.VisibilityVisible && v != domain.VisibilityHidden {
			return c.Status(400).JSON(fiber.Map{"error": "invalid visibility"})
		}
		cmd.Visibility = &v
	}

	if err := h.svc.UpdateFeedHashtags(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) deleteFeed(c *fiber.Ctx) error {
	if err := h.svc.DeleteFeed(c.Context(), c.Params("feed_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsNotFound(err):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsForbidden(err):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsTimeout(err):
		return c.Status(504).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
