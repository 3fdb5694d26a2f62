package storage

import (
	"context"
	"fmt"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (s *DatabaseStorage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpsertUser inserts the user keyed on its id or, when the id already exists,
// refreshes the profile columns. An email held by a different id is refused
// with ErrEmailTaken so that two identities never share a row.
func (s *DatabaseStorage) UpsertUser(ctx context.Context, user models.User) (*models.User, error) {
	db := s.db.WithContext(ctx)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.UpdatedAt = s.now()

	if user.Email != nil && *user.Email != "" {
		var taken int64
		err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *user.Email, user.ID).Count(&taken).Error
		if err != nil {
			return nil, fmt.Errorf("check user email: %w", err)
		}
		if taken > 0 {
			return nil, ErrEmailTaken
		}
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return s.GetUser(ctx, user.ID)
}

func (s *DatabaseStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
