// Package firebaseauth verifies Firebase ID tokens and maps them to the
// identity tuple the service trusts. The client is constructed once at the
// composition root and injected; there is no package-level state.
package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"estate-service/internal/model"
	"estate-service/pkg/config"
)

// Verifier validates Firebase ID tokens against the configured project.
type Verifier struct {
	client *auth.Client
}

// NewVerifier builds the Firebase Admin app and its auth client. Credentials
// come from the configured service-account file, or from application-default
// credentials when none is set.
func NewVerifier(ctx context.Context, cfg config.FirebaseConfig) (*Verifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

// Verify checks the ID token and returns the verified identity tuple.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*model.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	return &model.Identity{
		UID:     token.UID,
		Email:   claimString(token, "email"),
		Name:    claimString(token, "name"),
		Picture: claimString(token, "picture"),
	}, nil
}

func claimString(token *auth.Token, key string) string {
	if v, ok := token.Claims[key].(string); ok {
		return v
	}
	return ""
}
