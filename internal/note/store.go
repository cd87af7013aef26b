package note

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("note not found")

type Store struct {
	DB *gorm.DB
}

func (s *Store) Create(ctx context.Context, userID uint64, title, content string) (*Note, error) {
	n := &Note{UserID: userID, Title: title, Content: content}
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(n).Error; err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// Update rewrites title and content; gorm adds updated_at to the same
// statement.
func (s *Store) Update(ctx context.Context, id uint64, title, content string) error {
	if err := s.DB.WithContext(ctx).
		Model(&Note{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content}).Error; err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint64) error {
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&Note{}).Error; err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (s *Store) ByUser(ctx context.Context, userID uint64) ([]Note, error) {
	var notes []Note
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	return notes, nil
}

func (s *Store) ByID(ctx context.Context, id uint64) (*Note, error) {
	var n Note
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select note: %w", err)
	}
	return &n, nil
}
