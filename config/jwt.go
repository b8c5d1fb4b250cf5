package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

var AdminJWTSecret []byte
var AdminTokenTTL time.Duration
var AdminEmail string
var AdminPasswordHash string

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour

	adminSecret := os.Getenv("ADMIN_JWT_SECRET")
	if adminSecret == "" {
		adminSecret = secret
	}
	AdminJWTSecret = []byte(adminSecret)
	AdminTokenTTL = 2 * time.Hour

	AdminEmail = os.Getenv("ADMIN_EMAIL")
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
}
