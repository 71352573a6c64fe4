package connection

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FBConnection initializes the Firebase Admin SDK from the base64-encoded
// service account in FB_SERVICE_KEY and returns the auth and Firestore
// clients. When the key is not configured both clients are nil and the
// caller is expected to fall back to development token verification.
func FBConnection(ctx context.Context) (*firebaseauth.Client, *firestore.Client, error) {
	raw := os.Getenv("FB_SERVICE_KEY")
	if raw == "" {
		return nil, nil, nil
	}

	credentials, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode FB_SERVICE_KEY: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase auth client: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firestore client: %w", err)
	}

	return authClient, firestoreClient, nil
}
