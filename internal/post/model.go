package post

import (
	"time"

	"murmur/internal/auth"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"index;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	User auth.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"index;not null"`
	UserID    uint64    `gorm:"index;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Post Post      `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User auth.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// Like has no uniqueness constraint: every like is its own row and the
// like count is the raw row count.
type Like struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"index;not null"`
	UserID    uint64    `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Post Post      `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User auth.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// View is a post enriched for display.
type View struct {
	Post
	LikeCount int64
	Comments  []Comment
	Liked     bool
}
