package config

import "strings"

const masked = "****"

// Sanitize returns a copy of cfg that is safe to log. The plaintext
// password is masked and a password hash keeps only its algorithm and
// cost parameters.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	sanitized.Share.Folders = append([]string(nil), cfg.Share.Folders...)

	if sanitized.Share.Password != "" {
		sanitized.Share.Password = masked
	}
	if sanitized.Share.PasswordHash != "" {
		sanitized.Share.PasswordHash = maskHash(sanitized.Share.PasswordHash)
	}

	return &sanitized
}

// maskHash keeps the "$argon2id$v=..$m=..,t=..,p=.." prefix of a PHC
// string and hides salt and digest. Anything else is masked whole.
func maskHash(s string) string {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" {
		return masked
	}
	return strings.Join(append(parts[:4:4], masked, masked), "$")
}
