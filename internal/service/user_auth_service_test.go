package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newUserAuthTestEnv(t *testing.T, name string) *UserAuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := newUserAuthTestEnv(t, "dupemail")

	input := RegisterInput{Email: "shopper@example.com", Password: "hunter22", Name: "Shopper"}
	if _, _, _, err := service.Register(input); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 邮箱比较不区分大小写
	input.Email = "Shopper@Example.com"
	if _, _, _, err := service.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

func TestLoginVerifiesPasswordAndIssuesToken(t *testing.T) {
	service := newUserAuthTestEnv(t, "login")

	if _, _, _, err := service.Register(RegisterInput{Email: "user@example.com", Password: "secret99", Name: "User"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, expiresAt, err := service.Login("user@example.com", "secret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("token should be issued with future expiry")
	}

	claims, err := service.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, _, _, err := service.Login("user@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := service.Login("ghost@example.com", "secret99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestDisabledUserCannotLogin(t *testing.T) {
	service := newUserAuthTestEnv(t, "disabled")

	user, _, _, err := service.Register(RegisterInput{Email: "blocked@example.com", Password: "secret99", Name: "Blocked"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user.Status = "disabled"
	if err := service.userRepo.Update(user); err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := service.Login("blocked@example.com", "secret99"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	service := newUserAuthTestEnv(t, "chpass")

	user, _, _, err := service.Register(RegisterInput{Email: "rotate@example.com", Password: "oldpass1", Name: "Rotate"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := service.ChangePassword(user.ID, "wrong", "newpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if err := service.ChangePassword(user.ID, "oldpass1", "newpass1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := service.Login("rotate@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
