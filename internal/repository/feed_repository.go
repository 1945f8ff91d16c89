package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mul-meong/backend-feed/internal/domain"
)

// MongoRepository implements Store over the feeds, feed_media and
// feed_hashtags collections of one database.
type MongoRepository struct {
	client   *mongo.Client
	feeds    *mongo.Collection
	media    *mongo.Collection
	hashtags *mongo.Collection
}

func NewMongoRepository(client *mongo.Client, db string) *MongoRepository {
	d := client.Database(db)
	r := &MongoRepository{
		client:   client,
		feeds:    d.Collection("feeds"),
		media:    d.Collection("feed_media"),
		hashtags: d.Collection("feed_hashtags"),
	}

	memberIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "member_uuid", Value: 1}},
		Options: options.Index().SetName("member_idx"),
	}
	_, _ = r.feeds.Indexes().CreateOne(context.Background(), memberIdx)

	mediaIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "feed_uuid", Value: 1}},
		Options: options.Index().SetName("feed_media_idx"),
	}
	_, _ = r.media.Indexes().CreateOne(context.Background(), mediaIdx)

	return r
}

func (r *MongoRepository) FindFeed(ctx context.Context, feedID string) (*domain.Feed, error) {
	var f domain.Feed
	if err := r.feeds.FindOne(ctx, bson.M{"_id": feedID}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoRepository) SaveFeed(ctx context.Context, f *domain.Feed) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.feeds.ReplaceOne(ctx, bson.M{"_id": f.FeedID}, f, opts)
	return err
}

func (r *MongoRepository) DeleteFeed(ctx context.Context, feedID string) error {
	_, err := r.feeds.DeleteOne(ctx, bson.M{"_id": feedID})
	return err
}

func (r *MongoRepository) FindHashtags(ctx context.Context, feedID string) (*domain.HashtagSet, error) {
	var s domain.HashtagSet
	if err := r.hashtags.FindOne(ctx, bson.M{"_id": feedID}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) ReplaceHashtags(ctx context.Context, set *domain.HashtagSet) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.hashtags.ReplaceOne(ctx, bson.M{"_id": set.FeedID}, set, opts)
	return err
}

func (r *MongoRepository) DeleteHashtags(ctx context.Context, feedID string) error {
	_, err := r.hashtags.DeleteOne(ctx, bson.M{"_id": feedID})
	return err
}

func (r *MongoRepository) ListMedia(ctx context.Context, feedID string) ([]domain.Media, error) {
	cur, err := r.media.Find(ctx, bson.M{"feed_uuid": feedID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Media{}
	for cur.Next(ctx) {
		var m domain.Media
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

func (r *MongoRepository) InsertMedia(ctx context.Context, media []domain.Media) error {
	if len(media) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(media))
	for _, m := range media {
		docs = append(docs, m)
	}
	_, err := r.media.InsertMany(ctx, docs)
	return err
}

func (r *MongoRepository) DeleteMedia(ctx context.Context, feedID string) error {
	_, err := r.media.DeleteMany(ctx, bson.M{"feed_uuid": feedID})
	return err
}

// WithTransaction runs fn inside one session-scoped transaction so that
// writes across the three collections commit or abort together.
// Operations inside fn must use the context it receives.
func (r *MongoRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
