package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "billbook"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the system keyring when set, for headless or CI use.
	EnvKey = "BILLBOOK_DB_KEY"
)

// Keyring provides secure storage for the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
}

type systemKeyring struct{}

// NewKeyring returns a keyring backed by the OS credential store. The
// BILLBOOK_DB_KEY environment variable, when set, takes precedence over the
// store for both reads and writes.
func NewKeyring() Keyring {
	return &systemKeyring{}
}

func (k *systemKeyring) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}
	if key == "" {
		return "", errors.New("stored encryption key is empty")
	}
	return key, nil
}

func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if os.Getenv(EnvKey) != "" {
		// The env var already supplies the key, nothing to store.
		return nil
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring (set %s instead): %w", EnvKey, err)
	}
	return nil
}

func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}
