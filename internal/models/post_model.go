package models

import (
	"time"

	"cloud.google.com/go/civil"
)

type Post struct {
	ID         string     `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Date       civil.Date `db:"post_date" json:"date"`
	Time       *Clock     `db:"post_time" json:"time,omitempty"`
	Platform   Platform   `db:"platform" json:"platform"`
	Type       PostType   `db:"post_type" json:"type"`
	Content    string     `db:"content" json:"content,omitempty"`
	Status     PostStatus `db:"status" json:"status"`
	CampaignID string     `db:"campaign_id" json:"campaign_id,omitempty"`
	CreatedBy  string     `db:"created_by" json:"created_by,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// HasCampaign reports whether the post carries a campaign reference. The
// reference may still dangle.
func (p *Post) HasCampaign() bool {
	return p.CampaignID != ""
}

type MediaAsset struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PostMedia struct {
	PostID       string    `db:"post_id" json:"post_id"`
	AssetID      string    `db:"asset_id" json:"asset_id"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type PostStatus string

const (
	PostStatusDraft           PostStatus = "draft"
	PostStatusPendingApproval PostStatus = "pending_approval"
	PostStatusScheduled       PostStatus = "scheduled"
	PostStatusPublished       PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPendingApproval, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

func ParsePostStatus(s string) (PostStatus, error) {
	status := PostStatus(s)
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: "unknown post status " + s}
	}
	return status, nil
}

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn, PlatformTikTok, PlatformYouTube:
		return true
	}
	return false
}

func ParsePlatform(s string) (Platform, error) {
	platform := Platform(s)
	if !platform.Valid() {
		return "", &ValidationError{Field: "platform", Message: "unknown platform " + s}
	}
	return platform, nil
}

type PostType string

const (
	PostTypeImage    PostType = "image"
	PostTypeVideo    PostType = "video"
	PostTypeCarousel PostType = "carousel"
	PostTypeText     PostType = "text"
	PostTypeStory    PostType = "story"
	PostTypeReel     PostType = "reel"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeImage, PostTypeVideo, PostTypeCarousel, PostTypeText, PostTypeStory, PostTypeReel:
		return true
	}
	return false
}

func ParsePostType(s string) (PostType, error) {
	t := PostType(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Message: "unknown post type " + s}
	}
	return t, nil
}
