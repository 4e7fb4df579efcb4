package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/models"
)

// GormStore is the Postgres-backed AccountStore. Every query runs under the
// caller's context so the service layer's deadlines apply uniformly.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.New(errorx.BadRequest, "nickname %q already taken", user.Nickname)
		}
		return errorx.Wrap(err, errorx.StoreFailure, "could not create user")
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "user %d not found", id)
		}
		return nil, errorx.Wrap(err, errorx.StoreFailure, "could not load user")
	}
	return &user, nil
}

func (s *GormStore) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("nickname = ?", nickname).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "user %q not found", nickname)
		}
		return nil, errorx.Wrap(err, errorx.StoreFailure, "could not load user")
	}
	return &user, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("points DESC").Find(&users).Error; err != nil {
		return nil, errorx.Wrap(err, errorx.StoreFailure, "could not list users")
	}
	return users, nil
}

func (s *GormStore) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := s.DB.WithContext(ctx).
		Where("nickname LIKE ? OR full_name LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, errorx.Wrap(err, errorx.StoreFailure, "could not search users")
	}
	return users, nil
}

func (s *GormStore) FindByUpline(ctx context.Context, nickname string) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Where("upline = ?", nickname).Order("points DESC").Find(&users).Error
	if err != nil {
		return nil, errorx.Wrap(err, errorx.StoreFailure, "could not load downlines")
	}
	return users, nil
}

func (s *GormStore) SaveActivity(ctx context.Context, activity *models.Activity) error {
	if err := s.DB.WithContext(ctx).Create(activity).Error; err != nil {
		return errorx.Wrap(err, errorx.StoreFailure, "could not save activity")
	}
	return nil
}

func (s *GormStore) UpdateAggregate(ctx context.Context, userID uint, points, streak int) error {
	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"points": points, "streak": streak})
	if result.Error != nil {
		return errorx.Wrap(result.Error, errorx.StoreFailure, "could not update aggregate")
	}
	if result.RowsAffected == 0 {
		return errorx.New(errorx.NotFound, "user %d not found", userID)
	}
	return nil
}

// ResetHistory wipes a member's ledger and zeroes the aggregate. Admin only;
// this is the one sanctioned way points ever go down.
func (s *GormStore) ResetHistory(ctx context.Context, userID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"points": 0, "streak": 0}).Error
	})
	if err != nil {
		return errorx.Wrap(err, errorx.StoreFailure, "could not reset history")
	}
	return nil
}
