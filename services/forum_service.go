// services/forum_service.go
package services

import (
	"errors"
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type ForumService struct{ db *gorm.DB }

func NewForumService(db *gorm.DB) *ForumService { return &ForumService{db: db} }

type ForumPostInput struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	ImageBase64 string `json:"image_base64"`
}

// PostView decorates a post with per-viewer engagement state. Score and
// counts are recomputed from the ledgers on every read.
type PostView struct {
	models.ForumPost
	Score         int   `json:"score"`
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       bool  `json:"is_liked"`
	UserVote      int   `json:"user_vote"`
}

type TrendingPost struct {
	PostID        uint   `json:"post_id"`
	Title         string `json:"title"`
	TodayComments int64  `json:"today_comments"`
}

func (s *ForumService) CreatePost(userID uint, in ForumPostInput) (*models.ForumPost, error) {
	post := &models.ForumPost{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
	}
	if in.ImageBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageBase64, "forum-images", fmt.Sprintf("user-%d", userID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload post image: %w", err)
		}
		post.ImageURL = url
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) ListPosts(viewerID uint, limit, offset int) ([]PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var posts []models.ForumPost
	err := s.db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v, err := s.decorate(viewerID, p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetPost also bumps the view counter. The increment races with concurrent
// readers and may under-count; accepted.
func (s *ForumService) GetPost(viewerID, postID uint) (*PostView, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(post).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return nil, err
	}
	post.ViewsCount++

	v, err := s.decorate(viewerID, *post)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeletePost is owner-only; posts are publicly readable so a foreign delete
// is Forbidden rather than NotFound.
func (s *ForumService) DeletePost(userID, postID uint) error {
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return fmt.Errorf("%w: not your post", ErrForbidden)
	}
	if err := s.db.Where("post_id = ?", post.ID).Delete(&models.ForumComment{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("post_id = ?", post.ID).Delete(&models.ForumPostLike{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("post_id = ?", post.ID).Delete(&models.ForumPostVote{}).Error; err != nil {
		return err
	}
	return s.db.Delete(post).Error
}

// ToggleLike flips the (user, post) like row: create if absent, delete if
// present. Returns the resulting state and a fresh total.
func (s *ForumService) ToggleLike(userID, postID uint) (bool, int64, error) {
	if _, err := s.findPost(postID); err != nil {
		return false, 0, err
	}

	var like models.ForumPostLike
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	switch {
	case err == nil:
		if err := s.db.Delete(&like).Error; err != nil {
			return false, 0, err
		}
		count, err := s.likesCount(postID)
		return false, count, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = models.ForumPostLike{UserID: userID, PostID: postID}
		if err := s.db.Create(&like).Error; err != nil {
			return false, 0, err
		}
		count, err := s.likesCount(postID)
		return true, count, err
	default:
		return false, 0, err
	}
}

// SetVote applies the vote contract: 0 or re-sending the current value
// clears the row (un-vote), a different nonzero value replaces it in
// place. Returns the resulting vote and the post's recomputed score.
func (s *ForumService) SetVote(userID, postID uint, value int) (int, int, error) {
	if value < -1 || value > 1 {
		return 0, 0, fmt.Errorf("%w: vote value must be -1, 0 or 1", ErrValidation)
	}
	if _, err := s.findPost(postID); err != nil {
		return 0, 0, err
	}

	var vote models.ForumPostVote
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error

	resulting := 0
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if value != 0 {
			vote = models.ForumPostVote{UserID: userID, PostID: postID, Value: value}
			if err := s.db.Create(&vote).Error; err != nil {
				return 0, 0, err
			}
			resulting = value
		}
	case err != nil:
		return 0, 0, err
	case value == 0 || value == vote.Value:
		if err := s.db.Delete(&vote).Error; err != nil {
			return 0, 0, err
		}
	default:
		vote.Value = value
		if err := s.db.Save(&vote).Error; err != nil {
			return 0, 0, err
		}
		resulting = value
	}

	score, err := s.score(postID)
	if err != nil {
		return 0, 0, err
	}
	return resulting, score, nil
}

// Trending ranks posts by comments made today (server-local midnight to
// midnight), ties broken by post id ascending.
func (s *ForumService) Trending(limit int) ([]TrendingPost, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	start := dayStart(now())
	end := dayEnd(now())

	var rows []TrendingPost
	err := s.db.
		Table("forum_comments").
		Select("forum_comments.post_id AS post_id, forum_posts.title AS title, COUNT(forum_comments.id) AS today_comments").
		Joins("JOIN forum_posts ON forum_posts.id = forum_comments.post_id").
		Where("forum_comments.created_at BETWEEN ? AND ?", start, end).
		Where("forum_comments.deleted_at IS NULL AND forum_posts.deleted_at IS NULL").
		Group("forum_comments.post_id, forum_posts.title").
		Order("today_comments DESC, post_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *ForumService) AddComment(userID, postID uint, content string) (*models.ForumComment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.ForumComment{PostID: postID, UserID: userID, Content: content}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	if post.UserID != userID {
		EmitAlert(post.UserID, models.AlertForumComment,
			fmt.Sprintf("Someone commented on your post %q.", post.Title))
	}
	return comment, nil
}

func (s *ForumService) ListComments(postID uint) ([]models.ForumComment, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}
	var comments []models.ForumComment
	err := s.db.
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *ForumService) DeleteComment(userID, commentID uint) error {
	var comment models.ForumComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return err
	}
	if comment.UserID != userID {
		return fmt.Errorf("%w: not your comment", ErrForbidden)
	}
	return s.db.Delete(&comment).Error
}

// ---------- aggregates ----------

func (s *ForumService) findPost(postID uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return nil, err
	}
	return &post, nil
}

func (s *ForumService) likesCount(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ForumPostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (s *ForumService) score(postID uint) (int, error) {
	var total struct{ Score int }
	err := s.db.Model(&models.ForumPostVote{}).
		Select("COALESCE(SUM(value), 0) AS score").
		Where("post_id = ?", postID).
		Scan(&total).Error
	return total.Score, err
}

func (s *ForumService) decorate(viewerID uint, post models.ForumPost) (PostView, error) {
	v := PostView{ForumPost: post}

	score, err := s.score(post.ID)
	if err != nil {
		return v, err
	}
	v.Score = score

	if v.LikesCount, err = s.likesCount(post.ID); err != nil {
		return v, err
	}

	if err := s.db.Model(&models.ForumComment{}).
		Where("post_id = ?", post.ID).
		Count(&v.CommentsCount).Error; err != nil {
		return v, err
	}

	var like models.ForumPostLike
	err = s.db.Where("user_id = ? AND post_id = ?", viewerID, post.ID).First(&like).Error
	if err == nil {
		v.IsLiked = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return v, err
	}

	var vote models.ForumPostVote
	err = s.db.Where("user_id = ? AND post_id = ?", viewerID, post.ID).First(&vote).Error
	if err == nil {
		v.UserVote = vote.Value
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return v, err
	}

	return v, nil
}
