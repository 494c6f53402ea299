package models

import (
    "time"

    "gorm.io/gorm"
)

type ForumPost struct {
    gorm.Model
    UserID     uint   `gorm:"index;not null"`
    Title      string `gorm:"size:255;not null"`
    Content    string `gorm:"type:text;not null"`
    ImageURL   string
    ViewsCount int `gorm:"default:0"`

    User     *User          `gorm:"foreignKey:UserID"`
    Comments []ForumComment `gorm:"foreignKey:PostID"`
}

type ForumComment struct {
    gorm.Model
    PostID  uint   `gorm:"index;not null"`
    UserID  uint   `gorm:"index;not null"`
    Content string `gorm:"type:text;not null"`

    User *User `gorm:"foreignKey:UserID"`
}

// ForumPostLike is a ledger row: at most one per (user, post). Liked state
// is the presence of the row, so toggling hard-deletes it (no soft delete,
// or the unique index would block a re-like).
type ForumPostLike struct {
    ID        uint `gorm:"primaryKey"`
    UserID    uint `gorm:"not null;uniqueIndex:idx_forum_likes_user_post"`
    PostID    uint `gorm:"not null;uniqueIndex:idx_forum_likes_user_post"`
    CreatedAt time.Time
}

// ForumPostVote holds -1/+1 per (user, post); neutral is the absence of a
// row. Score is summed on read, never cached.
type ForumPostVote struct {
    ID        uint `gorm:"primaryKey"`
    UserID    uint `gorm:"not null;uniqueIndex:idx_forum_votes_user_post"`
    PostID    uint `gorm:"not null;uniqueIndex:idx_forum_votes_user_post"`
    Value     int  `gorm:"not null"`
    CreatedAt time.Time
    UpdatedAt time.Time
}
