package config

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewMessagingClient connects to Firebase Cloud Messaging. With no
// credentials file configured it falls back to application default
// credentials, which is how the deployed environment authenticates.
func NewMessagingClient(cfg *Config) (*messaging.Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}

	return app.Messaging(ctx)
}
