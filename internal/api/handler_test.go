package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mul-meong/backend-feed/internal/domain"
	apperr "github.com/mul-meong/backend-feed/internal/errors"
)

type stubService struct {
	createFn func(ctx context.Context, cmd domain.CreateFeedCommand) (*domain.FeedView, error)
	getFn    func(ctx context.Context, feedID string) (*domain.FeedView, error)
	updateFn func(ctx context.Context, cmd domain.UpdateFeedCommand) error
	statusFn func(ctx context.Context, cmd domain.UpdateStatusCommand) error
	tagsFn   func(ctx context.Context, cmd domain.UpdateHashtagsCommand) error
	deleteFn func(ctx context.Context, feedID string) error
}

func (s *stubService) CreateFeed(ctx context.Context, cmd domain.CreateFeedCommand) (*domain.FeedView, error) {
	return s.createFn(ctx, cmd)
}

func (s *stubService) GetFeed(ctx context.Context, feedID string) (*domain.FeedView, error) {
	return s.getFn(ctx, feedID)
}

func (s *stubService) UpdateFeed(ctx context.Context, cmd domain.UpdateFeedCommand) error {
	return s.updateFn(ctx, cmd)
}

func (s *stubService) UpdateFeedStatus(ctx context.Context, cmd domain.UpdateStatusCommand) error {
	return s.statusFn(ctx, cmd)
}

func (s *stubService) UpdateFeedHashtags(ctx context.Context, cmd domain.UpdateHashtagsCommand) error {
	return s.tagsFn(ctx, cmd)
}

func (s *stubService) DeleteFeed(ctx context.Context, feedID string) error {
	return s.deleteFn(ctx, feedID)
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateFeed_Created(t *testing.T) {
	var captured domain.CreateFeedCommand
	svc := &stubService{
		createFn: func(ctx context.Context, cmd domain.CreateFeedCommand) (*domain.FeedView, error) {
			captured = cmd
			f := cmd.NewFeed("feed-1", time.Now().UTC())
			return &domain.FeedView{Feed: f, Hashtags: cmd.Hashtags, Media: cmd.MediaFor("feed-1")}, nil
		},
	}
	app := NewServer(svc)

	body := map[string]interface{}{
		"member_uuid": "u1",
		"title":       "t",
		"content":     "c",
		"category_id": 5,
		"hashtags":    []string{"go", "rust"},
		"media_list": []map[string]string{
			{"media_url": "http://x/1.png", "media_type": "image", "description": "d"},
		},
	}
	resp, err := app.Test(jsonRequest("POST", "/v1/feeds", body), -1)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	assert.Equal(t, "u1", captured.MemberID)
	assert.Equal(t, int64(5), captured.CategoryID)
	require.Len(t, captured.Media, 1)
	assert.Equal(t, domain.MediaTypeImage, captured.Media[0].MediaType)

	var out struct {
		Status string `json:"status"`
		Data   struct {
			FeedID     string   `json:"feed_uuid"`
			Visibility string   `json:"visibility"`
			Hashtags   []string `json:"hashtags"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "feed-1", out.Data.FeedID)
	assert.Equal(t, "VISIBLE", out.Data.Visibility)
	assert.Equal(t, []string{"go", "rust"}, out.Data.Hashtags)
}

func TestCreateFeed_InvalidBody(t *testing.T) {
	svc := &stubService{}
	app := NewServer(svc)

	req := httptest.NewRequest("POST", "/v1/feeds", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateFeed_MissingRequiredFields(t *testing.T) {
	svc := &stubService{}
	app := NewServer(svc)

	resp, err := app.Test(jsonRequest("POST", "/v1/feeds", map[string]string{"content": "c"}), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetFeed_NotFoundMapsTo404(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, feedID string) (*domain.FeedView, error) {
			return nil, &apperr.NotFoundError{Resource: "feed", ID: feedID}
		},
	}
	app := NewServer(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/feeds/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteFeed_ForbiddenMapsTo403(t *testing.T) {
	svc := &stubService{
		deleteFn: func(ctx context.Context, feedID string) error {
			return &apperr.ForbiddenError{Resource: "feed", ID: feedID}
		},
	}
	app := NewServer(svc)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/v1/feeds/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestUpdateFeedStatus_InvalidStatus(t *testing.T) {
	svc := &stubService{}
	app := NewServer(svc)

	resp, err := app.Test(jsonRequest("PATCH", "/v1/feeds/f1/status", map[string]string{"status": "BOGUS"}), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUpdateFeedStatus_OK(t *testing.T) {
	var captured domain.UpdateStatusCommand
	svc := &stubService{
		statusFn: func(ctx context.Context, cmd domain.UpdateStatusCommand) error {
			captured = cmd
			return nil
		},
	}
	app := NewServer(svc)

	resp, err := app.Test(jsonRequest("PATCH", "/v1/feeds/f1/status", map[string]string{"status": "INACTIVE"}), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "f1", captured.FeedID)
	assert.Equal(t, domain.StatusInactive, captured.Status)
}

func TestUpdateFeedHashtags_OK(t *testing.T) {
	var captured domain.UpdateHashtagsCommand
	svc := &stubService{
		tagsFn: func(ctx context.Context, cmd domain.UpdateHashtagsCommand) error {
			captured = cmd
			return nil
		},
	}
	app := NewServer(svc)

	body := map[string]interface{}{"hashtags": []string{"c"}}
	resp, err := app.Test(jsonRequest("PUT", "/v1/feeds/f1/hashtags", body), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "f1", captured.FeedID)
	assert.Equal(t, []string{"c"}, captured.Hashtags)
}

func TestUpdateFeed_TimeoutMapsTo504(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, cmd domain.UpdateFeedCommand) error {
			return &apperr.TimeoutError{Op: "update feed", Err: context.DeadlineExceeded}
		},
	}
	app := NewServer(svc)

	title := map[string]string{"title": "x"}
	resp, err := app.Test(jsonRequest("PATCH", "/v1/feeds/f1", title), -1)
	require.NoError(t, err)
	assert.Equal(t, 504, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	app := NewServer(&stubService{})
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
