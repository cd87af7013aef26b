package post

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("post not found")

// Store is the query layer for posts, comments and likes. Each method is
// one statement; nothing here opens a transaction.
type Store struct {
	DB *gorm.DB
}

func (s *Store) Create(ctx context.Context, userID uint64, content string) (*Post, error) {
	p := &Post{UserID: userID, Content: content}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id uint64, content string) error {
	if err := s.DB.WithContext(ctx).
		Model(&Post{}).
		Where("id = ?", id).
		Update("content", content).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes the post; comments and likes go with it through the
// foreign key cascade.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&Post{}).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := s.DB.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	return posts, nil
}

func (s *Store) ByUser(ctx context.Context, userID uint64) ([]Post, error) {
	var posts []Post
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("select user posts: %w", err)
	}
	return posts, nil
}

func (s *Store) ByID(ctx context.Context, id uint64) (*Post, error) {
	var p Post
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select post: %w", err)
	}
	return &p, nil
}

func (s *Store) AddComment(ctx context.Context, postID, userID uint64, content string) error {
	c := &Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// Comments returns the post's comments in storage order.
func (s *Store) Comments(ctx context.Context, postID uint64) ([]Comment, error) {
	var comments []Comment
	if err := s.DB.WithContext(ctx).Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	return comments, nil
}

func (s *Store) AddLike(ctx context.Context, postID, userID uint64) error {
	l := &Like{PostID: postID, UserID: userID}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(l).Error; err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (s *Store) LikeCount(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&Like{}).Where("post_id = ?", postID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

// Liked reports whether userID has liked the post at least once. A zero
// userID (viewer could not be resolved) is never a liker.
func (s *Store) Liked(ctx context.Context, postID, userID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var ids []uint64
	if err := s.DB.WithContext(ctx).
		Model(&Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, fmt.Errorf("select like: %w", err)
	}
	return len(ids) > 0, nil
}

// View attaches like count, comments and the viewer's liked flag to p.
func (s *Store) View(ctx context.Context, p Post, viewerID uint64) (View, error) {
	v := View{Post: p}
	var err error
	if v.LikeCount, err = s.LikeCount(ctx, p.ID); err != nil {
		return View{}, err
	}
	if v.Comments, err = s.Comments(ctx, p.ID); err != nil {
		return View{}, err
	}
	if v.Liked, err = s.Liked(ctx, p.ID, viewerID); err != nil {
		return View{}, err
	}
	return v, nil
}

func (s *Store) Views(ctx context.Context, posts []Post, viewerID uint64) ([]View, error) {
	out := make([]View, 0, len(posts))
	for _, p := range posts {
		v, err := s.View(ctx, p, viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
