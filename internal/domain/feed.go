package domain

import "time"

type Visibility string

const (
	VisibilityVisible Visibility = "VISIBLE"
	VisibilityHidden  Visibility = "HIDDEN"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Feed is the root record of a post. Media and hashtags live in their
// own collections keyed by FeedID; the feed holds no references to them.
type Feed struct {
	FeedID     string     `bson:"_id" json:"feed_uuid"`
	MemberID   string     `bson:"member_uuid" json:"member_uuid"`
	Title      string     `bson:"title" json:"title"`
	Content    string     `bson:"content" json:"content"`
	CategoryID int64      `bson:"category_id" json:"category_id"`
	Visibility Visibility `bson:"visibility" json:"visibility"`
	Status     Status     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// Media is one attachment belonging to a feed.
type Media struct {
	FeedID      string    `bson:"feed_uuid" json:"feed_uuid"`
	MediaURL    string    `bson:"media_url" json:"media_url"`
	MediaType   MediaType `bson:"media_type" json:"media_type"`
	Description string    `bson:"description" json:"description"`
}

// HashtagSet is the single per-feed document holding the tag set. A feed
// with no document reads as an empty set, not an error.
type HashtagSet struct {
	FeedID   string   `bson:"_id" json:"feed_uuid"`
	Hashtags []string `bson:"hashtags" json:"hashtags"`
}

// FeedView is the composed read model returned to callers.
type FeedView struct {
	Feed     `bson:",inline"`
	Hashtags []string `json:"hashtags"`
	Media    []Media  `json:"media_list"`
}

// NormalizeTags drops empty entries and duplicates while keeping first
// occurrence order. Tag order carries no meaning.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
