// internal/infra/firestoredb/token_repository.go
package firestoredb

import (
	"context"
	"fmt"
	"strings"

	"attendance_notifier/internal/domain/notification"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type tokenDocument struct {
	Token string `firestore:"token"`
}

// snapshotGetter fetches the token document; it wraps DocumentRef.Get.
type snapshotGetter func(ctx context.Context) (*firestore.DocumentSnapshot, error)

// TokenRepository reads the recipient token from a single Firestore document.
type TokenRepository struct {
	path string
	get  snapshotGetter
}

// NewTokenRepository returns a repository for the document at path, e.g. "admin/fcmToken".
func NewTokenRepository(client *firestore.Client, path string) (*TokenRepository, error) {
	path = strings.Trim(path, "/")
	if path == "" || len(strings.Split(path, "/"))%2 != 0 {
		return nil, fmt.Errorf("invalid token document path %q", path)
	}
	return &TokenRepository{
		path: path,
		get: func(ctx context.Context) (*firestore.DocumentSnapshot, error) {
			return client.Doc(path).Get(ctx)
		},
	}, nil
}

func (r *TokenRepository) RecipientToken(ctx context.Context) (string, error) {
	snap, err := r.get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", notification.ErrTokenNotFound
		}
		return "", fmt.Errorf("error reading token document %s: %w", r.path, err)
	}
	if snap == nil || !snap.Exists() {
		return "", notification.ErrTokenNotFound
	}

	var doc tokenDocument
	if err := snap.DataTo(&doc); err != nil {
		return "", fmt.Errorf("error decoding token document %s: %w", r.path, err)
	}
	if doc.Token == "" {
		return "", notification.ErrTokenNotFound
	}
	return doc.Token, nil
}
