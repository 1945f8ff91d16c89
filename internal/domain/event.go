package domain

import "time"

// Topics for outgoing change events. Every mutation publishes exactly
// one event, after its write has committed.
const (
	TopicFeedCreated        = "feed-created"
	TopicFeedUpdated        = "feed-updated"
	TopicFeedStatusUpdated  = "feed-status-updated"
	TopicFeedHashtagUpdated = "feed-hashtag-updated"
	TopicFeedDeleted        = "feed-deleted"
)

// FeedCreatedEvent carries the full created state.
type FeedCreatedEvent struct {
	FeedID     string     `json:"feed_uuid"`
	MemberID   string     `json:"member_uuid"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID int64      `json:"category_id"`
	Visibility Visibility `json:"visibility"`
	Status     Status     `json:"status"`
	Hashtags   []string   `json:"hashtags"`
	Media      []Media    `json:"media_list"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FeedUpdatedEvent carries the post-update snapshot of the feed record.
type FeedUpdatedEvent struct {
	FeedID     string     `json:"feed_uuid"`
	MemberID   string     `json:"member_uuid"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID int64      `json:"category_id"`
	Visibility Visibility `json:"visibility"`
	Status     Status     `json:"status"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type FeedStatusUpdatedEvent struct {
	FeedID string `json:"feed_uuid"`
	Status Status `json:"status"`
}

type FeedHashtagUpdatedEvent struct {
	FeedID   string   `json:"feed_uuid"`
	Hashtags []string `json:"hashtags"`
}

type FeedDeletedEvent struct {
	FeedID string `json:"feed_uuid"`
}

func NewFeedCreatedEvent(f Feed, tags []string, media []Media) FeedCreatedEvent {
	return FeedCreatedEvent{
		FeedID:     f.FeedID,
		MemberID:   f.MemberID,
		Title:      f.Title,
		Content:    f.Content,
		CategoryID: f.CategoryID,
		Visibility: f.Visibility,
		Status:     f.Status,
		Hashtags:   tags,
		Media:      media,
		CreatedAt:  f.CreatedAt,
	}
}

func NewFeedUpdatedEvent(f Feed) FeedUpdatedEvent {
	return FeedUpdatedEvent{
		FeedID:     f.FeedID,
		MemberID:   f.MemberID,
		Title:      f.Title,
		Content:    f.Content,
		CategoryID: f.CategoryID,
		Visibility: f.Visibility,
		Status:     f.Status,
		UpdatedAt:  f.UpdatedAt,
	}
}
