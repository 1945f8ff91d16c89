package service

import (
	"context"

	"github.com/mul-meong/backend-feed/internal/domain"
	"github.com/mul-meong/backend-feed/internal/repository"
)

// opRecorder keeps one ordered trace across store and publisher mocks
// so tests can assert that commits happen before publishes.
type opRecorder struct {
	ops []string
}

func (r *opRecorder) add(op string) { r.ops = append(r.ops, op) }

func (r *opRecorder) index(op string) int {
	for i, o := range r.ops {
		if o == op {
			return i
		}
	}
	return -1
}

type mockStore struct {
	rec *opRecorder

	feeds map[string]domain.Feed
	tags  map[string]domain.HashtagSet
	media map[string][]domain.Media

	findFeedErr error
	saveFeedErr error
	commitErr   error
}

func newMockStore(rec *opRecorder) *mockStore {
	return &mockStore{
		rec:   rec,
		feeds: map[string]domain.Feed{},
		tags:  map[string]domain.HashtagSet{},
		media: map[string][]domain.Media{},
	}
}

func (m *mockStore) FindFeed(ctx context.Context, feedID string) (*domain.Feed, error) {
	if m.findFeedErr != nil {
		return nil, m.findFeedErr
	}
	f, ok := m.feeds[feedID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (m *mockStore) SaveFeed(ctx context.Context, f *domain.Feed) error {
	if m.saveFeedErr != nil {
		return m.saveFeedErr
	}
	m.feeds[f.FeedID] = *f
	m.rec.add("save-feed")
	return nil
}

func (m *mockStore) DeleteFeed(ctx context.Context, feedID string) error {
	delete(m.feeds, feedID)
	m.rec.add("delete-feed")
	return nil
}

func (m *mockStore) FindHashtags(ctx context.Context, feedID string) (*domain.HashtagSet, error) {
	s, ok := m.tags[feedID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *mockStore) ReplaceHashtags(ctx context.Context, set *domain.HashtagSet) error {
	m.tags[set.FeedID] = *set
	m.rec.add("replace-hashtags")
	return nil
}

func (m *mockStore) DeleteHashtags(ctx context.Context, feedID string) error {
	delete(m.tags, feedID)
	m.rec.add("delete-hashtags")
	return nil
}

func (m *mockStore) ListMedia(ctx context.Context, feedID string) ([]domain.Media, error) {
	return m.media[feedID], nil
}

func (m *mockStore) InsertMedia(ctx context.Context, media []domain.Media) error {
	if len(media) == 0 {
		return nil
	}
	feedID := media[0].FeedID
	m.media[feedID] = append(m.media[feedID], media...)
	m.rec.add("insert-media")
	return nil
}

func (m *mockStore) DeleteMedia(ctx context.Context, feedID string) error {
	delete(m.media, feedID)
	m.rec.add("delete-media")
	return nil
}

// WithTransaction applies fn against the live maps and restores the
// pre-transaction snapshot when fn (or the forced commit) fails, so the
// all-or-nothing contract holds in tests too.
func (m *mockStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	feeds := copyMap(m.feeds)
	tags := copyMap(m.tags)
	media := copyMap(m.media)

	m.rec.add("tx-begin")
	err := fn(ctx)
	if err == nil {
		err = m.commitErr
	}
	if err != nil {
		m.feeds, m.tags, m.media = feeds, tags, media
		m.rec.add("tx-abort")
		return err
	}
	m.rec.add("tx-commit")
	return nil
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type publishedEvent struct {
	topic   string
	key     string
	payload interface{}
}

type mockPublisher struct {
	rec       *opRecorder
	published []publishedEvent
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, publishedEvent{topic: topic, key: key, payload: payload})
	m.rec.add("publish:" + topic)
	return nil
}

type mockCache struct {
	views       map[string]*domain.FeedView
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{views: map[string]*domain.FeedView{}}
}

func (m *mockCache) Get(ctx context.Context, feedID string) (*domain.FeedView, error) {
	return m.views[feedID], nil
}

func (m *mockCache) Set(ctx context.Context, v *domain.FeedView) error {
	m.views[v.FeedID] = v
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context, feedID string) error {
	delete(m.views, feedID)
	m.invalidated = append(m.invalidated, feedID)
	return nil
}

func writeOps(rec *opRecorder) []string {
	out := []string{}
	for _, op := range rec.ops {
		switch op {
		case "tx-begin", "tx-abort":
			continue
		}
		if len(op) > 8 && op[:8] == "publish:" {
			continue
		}
		out = append(out, op)
	}
	return out
}
