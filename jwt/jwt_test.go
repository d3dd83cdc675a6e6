package jwt

import (
	"errors"
	"testing"
	"time"

	"Storefront/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:jwt_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.BlacklistToken{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")
	db := newTestDB(t)

	token, err := GenerateToken(42, "John Doe", "john@example.com", time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	userID, name, email, err := VerifyToken(&token, db)
	if err != nil {
		t.Fatalf("expected token to verify: %v", err)
	}
	if userID != 42 || name != "John Doe" || email != "john@example.com" {
		t.Fatalf("unexpected claims: %d %q %q", userID, name, email)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	Init("test-secret")
	db := newTestDB(t)

	token, err := GenerateToken(42, "John Doe", "john@example.com", time.Now().Add(-time.Minute).Unix())
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, _, _, err := VerifyToken(&token, db); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTamperedSecretRejected(t *testing.T) {
	Init("test-secret")
	db := newTestDB(t)

	token, err := GenerateToken(42, "John Doe", "john@example.com", time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	Init("different-secret")
	defer Init("test-secret")

	if _, _, _, err := VerifyToken(&token, db); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestBlacklistedTokenRejected(t *testing.T) {
	Init("test-secret")
	db := newTestDB(t)

	token, err := GenerateToken(42, "John Doe", "john@example.com", time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	db.Create(&models.BlacklistToken{Token: token})

	_, _, _, err = VerifyToken(&token, db)
	if !errors.Is(err, ErrTokenBlacklisted) {
		t.Fatalf("expected ErrTokenBlacklisted, got %v", err)
	}
}
