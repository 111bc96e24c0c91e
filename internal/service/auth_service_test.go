package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zolt46/work-time-back/config"
	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/pkg/jwt"
)

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 720 * time.Hour,
	})
}

func setupTestAuthService() (AuthService, *mockUserRepo, *jwt.Manager) {
	repo, userRepo, _, _, _, _ := newTestRepository()
	jwtMgr := newTestJWTManager()
	// Redis 缺省不可用，黑名单功能降级
	svc := NewAuthService(repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

// seedAuthAccount 预置一个带登录凭证的用户
func seedAuthAccount(t *testing.T, userRepo *mockUserRepo, userID, loginID, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		UserID: userID,
		Name:   "测试用户",
		Role:   model.RoleMember,
		Active: active,
	}
	account := &model.AuthAccount{
		UserID:       userID,
		LoginID:      loginID,
		PasswordHash: string(hash),
	}
	user.AuthAccount = account
	userRepo.users[userID] = user
	userRepo.auths[loginID] = account
	return user
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type 期望 bearer，实际 %s", resp.TokenType)
	}
	if resp.User.UserID != "user-1" {
		t.Errorf("响应用户不正确: %s", resp.User.UserID)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != "user-1" {
		t.Errorf("AccessToken 声明不正确: %+v", claims)
	}
	if userRepo.auths["alice"].LastLoginAt == nil {
		t.Error("登录成功应记录最近登录时间")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownLoginID(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// 账号不存在与密码错误返回同一错误，避免泄露账号存在性
	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "nobody", Password: "secret123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "alice", Password: "secret123"})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

// ── Refresh ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	refreshToken, err := jwtMgr.GenerateRefreshToken("user-1", model.RoleMember, false)
	if err != nil {
		t.Fatalf("生成 RefreshToken 失败: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil || claims.TokenType != "access" {
		t.Errorf("刷新应签发新的 AccessToken: %v", err)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	accessToken, err := jwtMgr.GenerateAccessToken("user-1", model.RoleMember)
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	// access token 不能当作 refresh token 使用
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: accessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── Me / ChangePassword ──

func TestAuthService_Me(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	resp, err := svc.Me(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if resp.UserID != "user-1" {
		t.Errorf("用户不正确: %s", resp.UserID)
	}

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedAuthAccount(t, userRepo, "user-1", "alice", "secret123", true)

	err := svc.ChangePassword(context.Background(), "user-1", &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret456",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}

	err = svc.ChangePassword(context.Background(), "user-1", &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "newsecret456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 旧密码失效，新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "alice", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "alice", Password: "newsecret456"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}
