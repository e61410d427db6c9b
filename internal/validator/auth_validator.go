package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	"github.com/justishika/DevSecOps-SweetSpot/internal/repository"
	"github.com/justishika/DevSecOps-SweetSpot/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// emailが既に使用済み
	ErrEmailAlreadyUsed = errors.New("email already used")
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, firstName string, email string, password string, role string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if strings.TrimSpace(firstName) == "" || email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return ErrInvalidInput
	}

	// roleはcustomerかvendorのみ
	if !model.Role(role).Valid() {
		return ErrInvalidInput
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return ErrEmailAlreadyUsed
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string, role string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	if !model.Role(role).Valid() {
		return ErrInvalidInput
	}

	return nil
}

// ロール切替の入力を検証
func (v *authValidator) ValidateRoleSwitch(ctx context.Context, role string) error {
	if !model.Role(role).Valid() {
		return ErrInvalidInput
	}
	return nil
}

// プロフィール更新の入力を検証
func (v *authValidator) ValidateProfileUpdate(ctx context.Context, userID int64, email *string) error {
	if userID <= 0 {
		return ErrInvalidInput
	}

	if email != nil {
		e := strings.TrimSpace(*email)
		if !isEmailLike(e) {
			return ErrInvalidInput
		}

		// 別ユーザーが使用中なら弾く
		u, err := v.users.FindByEmail(ctx, e)
		if err == nil && u != nil && u.ID != userID {
			return ErrEmailAlreadyUsed
		}
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
