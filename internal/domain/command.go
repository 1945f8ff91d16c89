package domain

import "time"

// MediaInput is one attachment as carried by an inbound command, before
// it is bound to a feed id.
type MediaInput struct {
	MediaURL    string
	MediaType   MediaType
	Description string
}

type CreateFeedCommand struct {
	MemberID   string
	Title      string
	Content    string
	CategoryID int64
	Hashtags   []string
	Media      []MediaInput
}

// NewFeed builds the feed record for a create. Visibility defaults to
// VISIBLE and status to ACTIVE.
func (c CreateFeedCommand) NewFeed(feedID string, now time.Time) Feed {
	return Feed{
		FeedID:     feedID,
		MemberID:   c.MemberID,
		Title:      c.Title,
		Content:    c.Content,
		CategoryID: c.CategoryID,
		Visibility: VisibilityVisible,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c CreateFeedCommand) MediaFor(feedID string) []Media {
	if len(c.Media) == 0 {
		return nil
	}
	out := make([]Media, 0, len(c.Media))
	for _, m := range c.Media {
		out = append(out, Media{
			FeedID:      feedID,
			MediaURL:    m.MediaURL,
			MediaType:   m.MediaType,
			Description: m.Description,
		})
	}
	return out
}

func (c CreateFeedCommand) HashtagsFor(feedID string) HashtagSet {
	return HashtagSet{FeedID: feedID, Hashtags: NormalizeTags(c.Hashtags)}
}

// UpdateFeedCommand carries a partial update: only non-nil fields
// override the stored record.
type UpdateFeedCommand struct {
	FeedID     string
	Title      *string
	Content    *string
	CategoryID *int64
	Visibility *Visibility
}

// Apply returns the updated record without touching the input.
func (c UpdateFeedCommand) Apply(f Feed, now time.Time) Feed {
	if c.Title != nil {
		f.Title = *c.Title
	}
	if c.Content != nil {
		f.Content = *c.Content
	}
	if c.CategoryID != nil {
		f.CategoryID = *c.CategoryID
	}
	if c.Visibility != nil {
		f.Visibility = *c.Visibility
	}
	f.UpdatedAt = now
	return f
}

type UpdateStatusCommand struct {
	FeedID string
	Status Status
}

func (c UpdateStatusCommand) Apply(f Feed, now time.Time) Feed {
	f.Status = c.Status
	f.UpdatedAt = now
	return f
}

// UpdateHashtagsCommand replaces the whole tag set and may carry feed
// field changes alongside.
type UpdateHashtagsCommand struct {
	FeedID     string
	Title      *string
	Content    *string
	CategoryID *int64
	Visibility *Visibility
	Hashtags   []string
}

func (c UpdateHashtagsCommand) Apply(f Feed, now time.Time) Feed {
	if c.Title != nil {
		f.Title = *c.Title
	}
	if c.Content != nil {
		f.Content = *c.Content
	}
	if c.CategoryID != nil {
		f.CategoryID = *c.CategoryID
	}
	if c.Visibility != nil {
		f.Visibility = *c.Visibility
	}
	f.UpdatedAt = now
	return f
}

func (c UpdateHashtagsCommand) Tags() []string {
	return NormalizeTags(c.Hashtags)
}
