package orm

import (
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// ParseStatus matches a status string case-insensitively. The second
// return reports whether the input named a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(s)) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	case StatusArchived:
		return StatusArchived, true
	}

	return "", false
}

type Role string

const (
	RoleUser     Role = "USER"
	RoleReporter Role = "REPORTER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleUser:
		return RoleUser, true
	case RoleReporter:
		return RoleReporter, true
	case RoleAdmin:
		return RoleAdmin, true
	}

	return "", false
}

type Report struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"size:255;not null"             json:"title"`
	Slug    string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Excerpt string `gorm:"size:500;not null"             json:"excerpt"`
	Content string `gorm:"type:text;not null"            json:"content"`

	Status      Status     `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`

	AuthorID uint64 `gorm:"not null;index" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	CategoryID *uint64   `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Tags []Tag `gorm:"many2many:report_tags" json:"tags"`

	// Owned images, cascade-deleted with the report.
	Images []ReportImage `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"images"`

	ViewCount int64 `gorm:"not null;default:0" json:"viewCount"`

	// FeaturedImage is a direct URL override; FeaturedImageID references
	// an entry in Images. Both optional, see the resolution chain in
	// the report package.
	FeaturedImage   string  `gorm:"size:500" json:"featuredImage,omitempty"`
	FeaturedImageID *uint64 `json:"featuredImageId,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type ReportImage struct {
	ID       uint64 `gorm:"primaryKey"     json:"id"`
	ReportID uint64 `gorm:"not null;index" json:"reportId"`

	URL          string `gorm:"size:500;not null" json:"url"`
	ThumbnailURL string `gorm:"size:500"          json:"thumbnailUrl,omitempty"`
	Alt          string `gorm:"size:255;not null" json:"alt"`
	Caption      string `gorm:"size:500"          json:"caption,omitempty"`

	// Advisory sort key, not required contiguous or unique.
	DisplayOrder int `gorm:"not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"uploadedAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

type Category struct {
	ID          uint64 `gorm:"primaryKey"                    json:"id"`
	Name        string `gorm:"size:100;not null"             json:"name"`
	Slug        string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"size:500"                      json:"description,omitempty"`
	Color       string `gorm:"size:20"                       json:"color,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type Tag struct {
	ID   uint64 `gorm:"primaryKey"                   json:"id"`
	Name string `gorm:"size:50;not null"             json:"name"`
	Slug string `gorm:"size:50;not null;uniqueIndex" json:"slug"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type User struct {
	ID         uint64 `gorm:"primaryKey"                    json:"id"`
	Name       string `gorm:"size:100"                      json:"name"`
	Email      string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string `gorm:"not null"                      json:"-"`
	Role       Role   `gorm:"size:20;not null;default:'USER'" json:"role"`
	IsArchived bool   `gorm:"not null;default:false"        json:"isArchived"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type Testimonial struct {
	ID           uint64 `gorm:"primaryKey"         json:"id"`
	Quote        string `gorm:"type:text;not null" json:"quote"`
	Author       string `gorm:"size:255;not null"  json:"author"`
	Title        string `gorm:"size:255;not null"  json:"title"`
	Company      string `gorm:"size:255"           json:"company,omitempty"`
	Rating       int    `gorm:"not null;default:5" json:"rating"`
	Status       Status `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	DisplayOrder int    `gorm:"not null;default:0" json:"order"`
	AvatarURL    string `gorm:"size:500"           json:"avatarUrl,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}
