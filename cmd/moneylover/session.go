package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"moneylover/internal/api"
	"moneylover/internal/config"
)

// The CLI owns session persistence: the token pair, client id and expiry
// live in the viper config file, and the core never touches it.

func newClient() *api.Client {
	cfg := config.Load()
	return api.NewClient(api.Options{
		APIBaseURL:   cfg.APIBaseURL,
		OAuthBaseURL: cfg.OAuthBaseURL,
		Timeout:      cfg.HTTPTimeout,
	})
}

// restoreSession rebuilds the session from the config file and silently
// refreshes it when the stored expiry has passed, re-saving the rotated
// token pair.
func restoreSession(ctx context.Context, client *api.Client) (*api.Session, error) {
	refreshToken := viper.GetString("auth.refresh_token")
	clientID := viper.GetString("auth.client_id")
	if refreshToken == "" || clientID == "" {
		return nil, fmt.Errorf("not logged in, run 'moneylover login' first")
	}

	var expiresAt time.Time
	if expire := viper.GetInt64("auth.expire"); expire > 0 {
		expiresAt = time.Unix(expire, 0)
	}

	session := api.RestoreSession(viper.GetString("auth.access_token"), refreshToken, clientID, expiresAt)
	if session.State() != api.StateExpired {
		return session, nil
	}

	if err := client.Refresh(ctx, session); err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			return nil, fmt.Errorf("stored session rejected, run 'moneylover login' again: %w", err)
		}
		return nil, err
	}
	if err := saveSession(session); err != nil {
		return nil, fmt.Errorf("persist refreshed session: %w", err)
	}
	return session, nil
}

func saveSession(s *api.Session) error {
	viper.Set("auth.access_token", s.AccessToken)
	viper.Set("auth.refresh_token", s.RefreshToken)
	viper.Set("auth.client_id", s.ClientID)
	var expire int64
	if !s.ExpiresAt.IsZero() {
		expire = s.ExpiresAt.Unix()
	}
	viper.Set("auth.expire", expire)

	err := viper.WriteConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return herr
		}
		path := filepath.Join(home, ".config", "moneylover.yaml")
		if merr := os.MkdirAll(filepath.Dir(path), 0755); merr != nil {
			return merr
		}
		return viper.WriteConfigAs(path)
	}
	return err
}
