package firebase

import (
	"context"
	"fmt"
	"strings"

	"alertwatch/internal/models"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	app             *firebase.App
	authClient      *auth.Client
	firestoreClient *firestore.Client
)

// InitializeFirebase initializes the Firebase Admin SDK and the Firestore client.
func InitializeFirebase(ctx context.Context, credentialsFile string) error {
	opt := option.WithCredentialsFile(credentialsFile)

	var err error
	app, err = firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err = app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	firestoreClient, err = app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return nil
}

// GetAuthClient returns the Firebase Auth client
func GetAuthClient() *auth.Client {
	return authClient
}

// GetFirestoreClient returns the Firestore client
func GetFirestoreClient() *firestore.Client {
	return firestoreClient
}

// Close releases the Firestore client connection.
func Close() error {
	if firestoreClient != nil {
		return firestoreClient.Close()
	}
	return nil
}

// VerifyToken verifies a Firebase ID token and returns the caller's identity.
func VerifyToken(ctx context.Context, idToken string) (*models.Principal, error) {
	if authClient == nil {
		return nil, fmt.Errorf("firebase auth client not initialized")
	}

	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	p := &models.Principal{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		p.Email = strings.TrimSpace(email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		p.DisplayName = name
	}
	return p, nil
}

// CreateUser creates a Firebase Auth user. Used by the initial setup endpoint.
func CreateUser(ctx context.Context, email, password, displayName string) (*auth.UserRecord, error) {
	if authClient == nil {
		return nil, fmt.Errorf("firebase auth client not initialized")
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := authClient.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
