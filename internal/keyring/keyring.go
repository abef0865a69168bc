package keyring

import (
	"errors"
	"fmt"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no entry is found in the keyring
	ErrNotFound = errors.New("entry not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if value == "" {
		return errors.New("keyring value cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store entry in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete entry from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) { return get(constants.KeyringConnectionUser) }

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error { return set(constants.KeyringConnectionUser, connStr) }

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error { return del(constants.KeyringConnectionUser) }

// GetWebhookSecret retrieves the notifier webhook secret from the OS keyring.
func GetWebhookSecret() (string, error) { return get(constants.KeyringWebhookUser) }

// SetWebhookSecret stores the notifier webhook secret in the OS keyring.
func SetWebhookSecret(secret string) error { return set(constants.KeyringWebhookUser, secret) }

// IsAvailable checks if the OS keyring is available on the current system.
// Best effort: a missing test entry still proves the keyring responds.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
