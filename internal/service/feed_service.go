package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mul-meong/backend-feed/internal/domain"
	apperr "github.com/mul-meong/backend-feed/internal/errors"
	"github.com/mul-meong/backend-feed/internal/metrics"
	"github.com/mul-meong/backend-feed/internal/repository"
)

// EventPublisher hands a change event to the message bus. Delivery is
// at-least-once; a nil return only means the bus accepted it locally.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// ViewCache caches composed feed views. Optional.
type ViewCache interface {
	Get(ctx context.Context, feedID string) (*domain.FeedView, error)
	Set(ctx context.Context, v *domain.FeedView) error
	Invalidate(ctx context.Context, feedID string) error
}

// FeedService coordinates each feed mutation: durable write first, in
// one transaction where more than one collection is touched, then
// exactly one event on the matching topic. A publish failure after the
// commit is logged and counted but never fails the operation or rolls
// the write back.
type FeedService struct {
	store repository.Store
	pub   EventPublisher
	cache ViewCache // optional
	log   *zap.SugaredLogger

	storeTimeout   time.Duration
	publishTimeout time.Duration
}

func NewFeedService(store repository.Store, pub EventPublisher, cache ViewCache, log *zap.SugaredLogger, storeTimeout, publishTimeout time.Duration) *FeedService {
	return &FeedService{
		store:          store,
		pub:            pub,
		cache:          cache,
		log:            log,
		storeTimeout:   storeTimeout,
		publishTimeout: publishTimeout,
	}
}

// CreateFeed persists the feed, its media list and its hashtag set as
// one unit, then publishes feed-created with the full created state.
func (s *FeedService) CreateFeed(ctx context.Context, cmd domain.CreateFeedCommand) (*domain.FeedView, error) {
	now := time.Now().UTC()
	feed := cmd.NewFeed(uuid.New().String(), now)
	media := cmd.MediaFor(feed.FeedID)
	tags := cmd.HashtagsFor(feed.FeedID)

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	err := s.store.WithTransaction(sctx, func(txCtx context.Context) error {
		if err := s.store.SaveFeed(txCtx, &feed); err != nil {
			return err
		}
		if err := s.store.InsertMedia(txCtx, media); err != nil {
			return err
		}
		if len(tags.Hashtags) > 0 {
			if err := s.store.ReplaceHashtags(txCtx, &tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.writeFailure("create feed", err)
	}

	s.publishEvent(domain.TopicFeedCreated, feed.FeedID,
		domain.NewFeedCreatedEvent(feed, tags.Hashtags, media))

	view := &domain.FeedView{Feed: feed, Hashtags: tags.Hashtags, Media: media}
	if view.Hashtags == nil {
		view.Hashtags = []string{}
	}
	if view.Media == nil {
		view.Media = []domain.Media{}
	}
	return view, nil
}

// GetFeed composes the read-only view. Missing hashtag and media
// documents read as empty collections; only a missing feed is an error.
func (s *FeedService) GetFeed(ctx context.Context, feedID string) (*domain.FeedView, error) {
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, feedID); err == nil && v != nil {
			return v, nil
		}
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	feed, err := s.store.FindFeed(sctx, feedID)
	if err != nil {
		return nil, s.lookupFailure("feed", feedID, err)
	}

	tags := []string{}
	set, err := s.store.FindHashtags(sctx, feedID)
	switch {
	case err == nil:
		if set.Hashtags != nil {
			tags = set.Hashtags
		}
	case errors.Is(err, repository.ErrNotFound):
		// no hashtag document means an empty set
	default:
		return nil, s.readFailure("fetch hashtags", err)
	}

	media, err := s.store.ListMedia(sctx, feedID)
	if err != nil {
		return nil, s.readFailure("fetch media", err)
	}
	if media == nil {
		media = []domain.Media{}
	}

	view := &domain.FeedView{Feed: *feed, Hashtags: tags, Media: media}
	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.log.Warnw("view cache set failed", "feed_uuid", feedID, "err", err)
		}
	}
	return view, nil
}

// UpdateFeed applies the command's partial field changes to the stored
// record and publishes feed-updated with the post-update snapshot.
func (s *FeedService) UpdateFeed(ctx context.Context, cmd domain.UpdateFeedCommand) error {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	current, err := s.store.FindFeed(sctx, cmd.FeedID)
	if err != nil {
		return s.lookupFailure("feed", cmd.FeedID, err)
	}

	updated := cmd.Apply(*current, time.Now().UTC())
	if err := s.store.SaveFeed(sctx, &updated); err != nil {
		return s.writeFailure("update feed", err)
	}
	s.invalidate(ctx, cmd.FeedID)

	s.publishEvent(domain.TopicFeedUpdated, updated.FeedID, domain.NewFeedUpdatedEvent(updated))
	return nil
}

// UpdateFeedStatus changes only the lifecycle status.
func (s *FeedService) UpdateFeedStatus(ctx context.Context, cmd domain.UpdateStatusCommand) error {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	current, err := s.store.FindFeed(sctx, cmd.FeedID)
	if err != nil {
		return s.lookupFailure("feed", cmd.FeedID, err)
	}

	updated := cmd.Apply(*current, time.Now().UTC())
	if err := s.store.SaveFeed(sctx, &updated); err != nil {
		return s.writeFailure("update feed status", err)
	}
	s.invalidate(ctx, cmd.FeedID)

	s.publishEvent(domain.TopicFeedStatusUpdated, updated.FeedID,
		domain.FeedStatusUpdatedEvent{FeedID: updated.FeedID, Status: updated.Status})
	return nil
}

// UpdateFeedHashtags saves the command's feed field changes and replaces
// the whole hashtag set in one transaction. The old set is discarded,
// never merged.
func (s *FeedService) UpdateFeedHashtags(ctx context.Context, cmd domain.UpdateHashtagsCommand) error {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	current, err := s.store.FindFeed(sctx, cmd.FeedID)
	if err != nil {
		return s.lookupFailure("feed", cmd.FeedID, err)
	}

	updated := cmd.Apply(*current, time.Now().UTC())
	tags := cmd.Tags()

	err = s.store.WithTransaction(sctx, func(txCtx context.Context) error {
		if err := s.store.SaveFeed(txCtx, &updated); err != nil {
			return err
		}
		if len(tags) == 0 {
			return s.store.DeleteHashtags(txCtx, cmd.FeedID)
		}
		return s.store.ReplaceHashtags(txCtx, &domain.HashtagSet{FeedID: cmd.FeedID, Hashtags: tags})
	})
	if err != nil {
		return s.writeFailure("update feed hashtags", err)
	}
	s.invalidate(ctx, cmd.FeedID)

	s.publishEvent(domain.TopicFeedHashtagUpdated, cmd.FeedID,
		domain.FeedHashtagUpdatedEvent{FeedID: cmd.FeedID, Hashtags: tags})
	return nil
}

// DeleteFeed removes the feed row and its hashtag and media documents
// in one transaction, then publishes feed-deleted with the id only.
// Deleting a feed that does not exist fails with Forbidden, not
// NotFound: a missing target on delete is a permission question, not an
// existence question.
func (s *FeedService) DeleteFeed(ctx context.Context, feedID string) error {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.store.FindFeed(sctx, feedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &apperr.ForbiddenError{Resource: "feed", ID: feedID}
		}
		return s.readFailure("fetch feed", err)
	}

	err := s.store.WithTransaction(sctx, func(txCtx context.Context) error {
		if err := s.store.DeleteFeed(txCtx, feedID); err != nil {
			return err
		}
		if err := s.store.DeleteHashtags(txCtx, feedID); err != nil {
			return err
		}
		return s.store.DeleteMedia(txCtx, feedID)
	})
	if err != nil {
		return s.writeFailure("delete feed", err)
	}
	s.invalidate(ctx, feedID)

	s.publishEvent(domain.TopicFeedDeleted, feedID, domain.FeedDeletedEvent{FeedID: feedID})
	return nil
}

// publishEvent runs after the write committed. It uses a fresh context
// so caller cancellation cannot drop an event for a change that is
// already durable.
func (s *FeedService) publishEvent(topic, feedID string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
	defer cancel()

	if err := s.pub.Publish(ctx, topic, feedID, payload); err != nil {
		metrics.PublishFailures.WithLabelValues(topic).Inc()
		perr := &apperr.PublishError{Topic: topic, Err: err}
		s.log.Warnw("event publish failed after commit", "topic", topic, "feed_uuid", feedID, "err", perr)
		return
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()
}

func (s *FeedService) invalidate(ctx context.Context, feedID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, feedID); err != nil {
		s.log.Warnw("view cache invalidate failed", "feed_uuid", feedID, "err", err)
	}
}

func (s *FeedService) lookupFailure(resource, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &apperr.NotFoundError{Resource: resource, ID: id}
	}
	return s.readFailure("fetch "+resource, err)
}

func (s *FeedService) readFailure(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperr.TimeoutError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *FeedService) writeFailure(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperr.TimeoutError{Op: op, Err: err}
	}
	return &apperr.NotPersistedError{Op: op, Err: err}
}
