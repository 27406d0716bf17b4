package service

import (
	"fmt"
	"unicode"

	"github.com/blogicum/internal/config"
)

// PasswordPolicyError 密码不满足策略时返回，errors.Is(err, ErrWeakPassword) 为真
type PasswordPolicyError struct {
	Rule string
	Min  int
}

func (e PasswordPolicyError) Error() string {
	if e.Rule == "min_length" {
		return fmt.Sprintf("password must contain at least %d characters", e.Min)
	}
	return "password must contain " + e.Rule
}

func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{Rule: "min_length", Min: policy.MinLength}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case policy.RequireUpper && !hasUpper:
		return PasswordPolicyError{Rule: "an uppercase letter"}
	case policy.RequireLower && !hasLower:
		return PasswordPolicyError{Rule: "a lowercase letter"}
	case policy.RequireNumber && !hasNumber:
		return PasswordPolicyError{Rule: "a digit"}
	case policy.RequireSpecial && !hasSpecial:
		return PasswordPolicyError{Rule: "a special character"}
	}
	return nil
}
