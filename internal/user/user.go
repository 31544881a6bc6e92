package user

import (
	"crypto/md5" //nolint:gosec // gravatar identifies avatars by md5 of the email
	"encoding/hex"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/model"
)

type User struct {
	model.Model

	Name         string
	Email        string
	Avatar       string
	PasswordHash string
}

// GravatarURL returns the avatar URL for email, falling back to the
// "mystery person" image when no gravatar exists.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec // see import
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
