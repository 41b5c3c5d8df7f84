package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// AvatarDir is the upload subdirectory for user avatars.
const AvatarDir = "users"

// ImageStore saves and removes uploaded images.
type ImageStore interface {
	ImageRemover
	Save(dir, prefix string, f upload.File) upload.Result
}

// UserService handles user administration and profile changes
type UserService struct {
	store  database.Store
	images ImageStore
}

// NewUserService creates a new UserService
func NewUserService(store database.Store, images ImageStore) *UserService {
	return &UserService{
		store:  store,
		images: images,
	}
}

// ListUsers returns up to limit users without password hashes.
func (s *UserService) ListUsers(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	rows, err := s.store.GetAll(ctx, database.TableUsers, nil, utils.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.SanitizeUserRow(row))
	}
	return users, nil
}

// GetUserByID returns a user without the password hash.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (map[string]interface{}, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.SanitizeUserRow(row), nil
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (map[string]interface{}, error) {
	if err := utils.ValidateStruct(&models.RoleUpdate{Role: role}); err != nil {
		return nil, err
	}

	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Update(ctx, database.TableUsers, id, map[string]interface{}{constants.ColumnRole: role}); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	log.Info().Int64("user_id", id).Str("role", role).Msg("User role changed")
	row[constants.ColumnRole] = role
	return models.SanitizeUserRow(row), nil
}

// DeleteUser removes a user and their avatar.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, database.TableUsers, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if avatar, _ := row[constants.ColumnAvatar].(string); avatar != "" {
		s.removeImage(avatar)
	}

	log.Info().Int64("user_id", id).Msg("User deleted")
	return nil
}

// UpdateAvatar stores f as the user's avatar and replaces any previous one.
// A rejected or failed upload is returned as the Result's error.
func (s *UserService) UpdateAvatar(ctx context.Context, id int64, f upload.File) (map[string]interface{}, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.images.Save(AvatarDir, fmt.Sprintf("user-%d", id), f)
	if !res.Success {
		return nil, res.Err
	}

	if _, err := s.store.Update(ctx, database.TableUsers, id, map[string]interface{}{constants.ColumnAvatar: res.PublicPath}); err != nil {
		s.removeImage(res.PublicPath)
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if old, _ := row[constants.ColumnAvatar].(string); old != "" {
		s.removeImage(old)
	}

	row[constants.ColumnAvatar] = res.PublicPath
	return models.SanitizeUserRow(row), nil
}

func (s *UserService) getRow(ctx context.Context, id int64) (database.Row, error) {
	row, err := s.store.GetByID(ctx, database.TableUsers, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if row == nil {
		return nil, utils.NewNotFoundError("User", id)
	}
	return row, nil
}

func (s *UserService) removeImage(path string) {
	if err := s.images.Delete(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove avatar")
	}
}
