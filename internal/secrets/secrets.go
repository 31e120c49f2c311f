package secrets

import (
	"errors"
	"fmt"
	"strings"

	"autoapply-engine/internal/config"

	"github.com/zalando/go-keyring"
)

const (
	// Groups this app's secrets in the OS keychain.
	KeyringService = "autoapply"

	AccountAdzunaAppID  = "autoapply:adzuna:app_id"
	AccountAdzunaAppKey = "autoapply:adzuna:app_key"
)

// Get reads one secret by keychain account name.
func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	v, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("secret %s not found in keychain", account)
	}
	return v, nil
}

func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// IMAPKeyringAccount derives the keychain slot for the alert mailbox
// password from the configured identity.
func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"autoapply:imap:%s@%s",
		cfg.Sources.EmailAlert.Username,
		cfg.Sources.EmailAlert.IMAPHost,
	)
}
