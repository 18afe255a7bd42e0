package services

import (
	"errors"
	"testing"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/repo"
)

func TestEnsureSeedUser_Idempotent(t *testing.T) {
	users := repo.NewUserRepository(openTestDB(t))
	s := NewUserService(users)

	if err := s.EnsureSeedUser("admin", "pw-one", "admin"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	// Second seed with a different password must not replace the account.
	if err := s.EnsureSeedUser("admin", "pw-two", "admin"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if _, err := s.ValidateCredentials("admin", "pw-one"); err != nil {
		t.Fatalf("original password rejected: %v", err)
	}
	if _, err := s.ValidateCredentials("admin", "pw-two"); err == nil {
		t.Fatalf("re-seed overwrote the password")
	}
}

func TestValidateCredentials(t *testing.T) {
	users := repo.NewUserRepository(openTestDB(t))
	s := NewUserService(users)
	if err := s.EnsureSeedUser("viewer", "secret", "viewer"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	u, err := s.ValidateCredentials("viewer", "secret")
	if err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if u.Role != "viewer" {
		t.Fatalf("role = %q", u.Role)
	}

	if _, err := s.ValidateCredentials("viewer", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.ValidateCredentials("ghost", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestPasswordIsStoredHashed(t *testing.T) {
	users := repo.NewUserRepository(openTestDB(t))
	s := NewUserService(users)
	if err := s.EnsureSeedUser("admin", "plaintext", "admin"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u, err := users.FindByUsername("admin")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.PasswordHash == "plaintext" {
		t.Fatalf("password stored in the clear")
	}
}
