package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates ID tokens minted by the managed identity
// provider. It stands next to the local TokenManager: a request may
// carry either a locally issued JWT or a Firebase ID token, depending
// on the configured auth provider.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// VerifyIDToken checks the token signature and expiry against the
// provider and returns the subject's UID and email.
func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (uid, email string, err error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if e, ok := tok.Claims["email"].(string); ok {
		email = e
	}
	return tok.UID, email, nil
}
