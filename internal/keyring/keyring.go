// Package keyring keeps the PostgreSQL connection string in the OS credential
// store so a password never has to appear in --config or shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/meditracker/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func GetConnectionString() (string, error) {
	conn, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate(err)
	}
	return conn, nil
}

func SetConnectionString(conn string) error {
	if strings.TrimSpace(conn) == "" {
		return errors.New("connection string is empty")
	}
	return translate(keyring.Set(constants.AppName, constants.DefaultKeyringUser, conn))
}

func DeleteConnectionString() error {
	return translate(keyring.Delete(constants.AppName, constants.DefaultKeyringUser))
}

// translate maps go-keyring failures onto ErrNotFound and ErrKeyringUnavailable
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}
