package repository

import (
	"errors"
	"strings"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user data access
type UserRepository interface {
	FindByID(id uint64) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByUsernamesFold(usernames []string) ([]domain.User, error)
	Create(user *domain.User) error
	AdjustCred(id uint64, postDelta, commentDelta int) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernamesFold resolves usernames case-insensitively. Unknown names
// are simply absent from the result.
func (r *userRepository) FindByUsernamesFold(usernames []string) ([]domain.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(usernames))
	for i, u := range usernames {
		lowered[i] = strings.ToLower(u)
	}
	var users []domain.User
	err := r.db.Where("LOWER(username) IN ?", lowered).Find(&users).Error
	return users, err
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// AdjustCred applies vote-settlement deltas to a user's credit, clamping
// at zero (karma is never negative). Runs in a transaction so concurrent
// settlements do not lose updates.
func (r *userRepository) AdjustCred(id uint64, postDelta, commentDelta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		postCred := user.PostCred + postDelta
		if postCred < 0 {
			postCred = 0
		}
		commentCred := user.CommentCred + commentDelta
		if commentCred < 0 {
			commentCred = 0
		}
		return tx.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]interface{}{
			"post_cred":    postCred,
			"comment_cred": commentCred,
		}).Error
	})
}
