package service

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptvault/internal/config"
)

var usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// usernameRules are shared between registration, admin user creation and
// profile updates.
func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("username is required"),
		validation.Length(config.MinUsernameLength, config.MaxUsernameLength).
			Error(fmt.Sprintf("username must be at least %d characters long", config.MinUsernameLength)),
		validation.Match(usernameCharset).
			Error("username can only contain letters, numbers, hyphens, and underscores"),
	}
}

// emailRules require a plausible address. The original system only checks
// for an "@", and stricter parsing would reject addresses it accepted.
func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("valid email is required"),
		validation.By(func(value interface{}) error {
			email, _ := value.(string)
			if !strings.Contains(email, "@") {
				return fmt.Errorf("valid email is required")
			}
			return nil
		}),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("password is required"),
		validation.Length(config.MinPasswordLength, 0).
			Error(fmt.Sprintf("password must be at least %d characters long", config.MinPasswordLength)),
	}
}

// matchRule validates that a confirmation field equals the original value
func matchRule(other, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s != other {
			return fmt.Errorf("%s", message)
		}
		return nil
	})
}
