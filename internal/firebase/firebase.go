package firebase

import (
	"context"
	"os"

	"fn7-backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	appCfg := &firebase.Config{}
	// If ProjectID is set, pass it (useful when running locally)
	if cfg.ProjectID != "" {
		appCfg.ProjectID = cfg.ProjectID
	}
	return firebase.NewApp(ctx, appCfg, credentialOptions(cfg)...)
}

// credentialOptions picks the first configured credential source:
// FIREBASE_SERVICE_ACCOUNT_JSON (raw json), FIREBASE_SERVICE_ACCOUNT_PATH,
// then GOOGLE_APPLICATION_CREDENTIALS. With none set, Application Default
// Credentials are used.
func credentialOptions(cfg config.Config) []option.ClientOption {
	switch {
	case cfg.ServiceAccountJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))}
	case cfg.ServiceAccountPath != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.ServiceAccountPath)}
	}
	if cred := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); cred != "" {
		return []option.ClientOption{option.WithCredentialsFile(cred)}
	}
	return nil
}
