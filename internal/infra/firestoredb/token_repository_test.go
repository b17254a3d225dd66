package firestoredb

import (
	"context"
	"errors"
	"os"
	"testing"

	"attendance_notifier/internal/domain/notification"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewTokenRepository_Path(t *testing.T) {
	repo, err := NewTokenRepository(nil, "/admin/fcmToken/")
	require.NoError(t, err)
	assert.Equal(t, "admin/fcmToken", repo.path)

	_, err = NewTokenRepository(nil, "admin")
	assert.Error(t, err)

	_, err = NewTokenRepository(nil, "")
	assert.Error(t, err)
}

func repoReturning(snap *firestore.DocumentSnapshot, err error) *TokenRepository {
	return &TokenRepository{
		path: "admin/fcmToken",
		get: func(ctx context.Context) (*firestore.DocumentSnapshot, error) {
			return snap, err
		},
	}
}

func TestTokenRepository_NotFoundStatus(t *testing.T) {
	repo := repoReturning(nil, status.Error(codes.NotFound, "no document"))

	_, err := repo.RecipientToken(context.Background())
	assert.ErrorIs(t, err, notification.ErrTokenNotFound)
}

func TestTokenRepository_ReadError(t *testing.T) {
	cause := status.Error(codes.PermissionDenied, "missing or insufficient permissions")
	repo := repoReturning(nil, cause)

	_, err := repo.RecipientToken(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, notification.ErrTokenNotFound)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "admin/fcmToken")
}

func TestTokenRepository_NilSnapshot(t *testing.T) {
	repo := repoReturning(nil, nil)

	_, err := repo.RecipientToken(context.Background())
	assert.ErrorIs(t, err, notification.ErrTokenNotFound)
}

// The remaining cases need real snapshots and run against the Firestore
// emulator (firebase emulators:start --only firestore).
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "demo-attendance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTokenRepository_Emulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		data    map[string]interface{}
		want    string
		wantErr error
		decode  bool
	}{
		{name: "token present", data: map[string]interface{}{"token": "T1"}, want: "T1"},
		{name: "empty token", data: map[string]interface{}{"token": ""}, wantErr: notification.ErrTokenNotFound},
		{name: "token field absent", data: map[string]interface{}{"updatedBy": "admin"}, wantErr: notification.ErrTokenNotFound},
		{name: "missing document", wantErr: notification.ErrTokenNotFound},
		{name: "token is not a string", data: map[string]interface{}{"token": 42}, decode: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := "admin_" + uuid.NewString() + "/fcmToken"
			if tc.data != nil {
				_, err := client.Doc(path).Set(ctx, tc.data)
				require.NoError(t, err)
			}

			repo, err := NewTokenRepository(client, path)
			require.NoError(t, err)

			token, err := repo.RecipientToken(ctx)
			switch {
			case tc.decode:
				require.Error(t, err)
				assert.NotErrorIs(t, err, notification.ErrTokenNotFound)
				assert.Contains(t, err.Error(), "error decoding token document")
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, token)
			}
		})
	}
}
