package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrEmptyComment = errors.New("comment text is required")

type BlogLike struct {
	DeviceID  string    `json:"device_id,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogReply struct {
	ReplyID   string    `json:"reply_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type BlogComment struct {
	CommentID string      `json:"comment_id"`
	Text      string      `json:"text"`
	DeviceID  string      `json:"device_id,omitempty"`
	IP        string      `json:"ip,omitempty"`
	UserAgent string      `json:"user_agent,omitempty"`
	Replies   []BlogReply `json:"replies,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Blog struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	Slug    string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content string    `gorm:"type:text;not null" json:"content"`

	Tags       datatypes.JSONSlice[string] `json:"tags"`
	CoverImage string                      `gorm:"type:text" json:"cover_image"`

	IsPublished bool      `gorm:"default:false;index" json:"is_published"`
	AuthorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"author_id"`

	Likes    datatypes.JSONSlice[BlogLike]    `json:"likes"`
	Comments datatypes.JSONSlice[BlogComment] `json:"comments"`

	Views int64 `gorm:"default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// ToggleLike adds a like for the device, or removes an existing one. A like
// matches on device fingerprint, falling back to IP for clients that never
// sent one. Returns whether the blog is liked after the call.
func (b *Blog) ToggleLike(deviceID, ip, userAgent string) bool {
	for i, l := range b.Likes {
		if (deviceID != "" && l.DeviceID == deviceID) || (deviceID == "" && l.IP == ip) {
			b.Likes = append(b.Likes[:i], b.Likes[i+1:]...)
			return false
		}
	}
	b.Likes = append(b.Likes, BlogLike{
		DeviceID:  deviceID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	})
	return true
}

func (b *Blog) AddComment(text, deviceID, ip, userAgent string) (BlogComment, error) {
	if strings.TrimSpace(text) == "" {
		return BlogComment{}, ErrEmptyComment
	}
	comment := BlogComment{
		CommentID: uuid.NewString(),
		Text:      text,
		DeviceID:  deviceID,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}
	b.Comments = append(b.Comments, comment)
	return comment, nil
}
