// internal/infra/firebase/bootstrap.go
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and credentials.
type Config struct {
	ProjectID       string
	CredentialsPath string // Empty means application default credentials
}

// Services lists the clients Bootstrap should create.
type Services struct {
	Firestore bool
	Messaging bool
}

// Clients is the process-wide Firebase context, created once at startup and
// shared by every invocation.
type Clients struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// Bootstrap initializes the Firebase app and the requested service clients.
func Bootstrap(ctx context.Context, cfg Config, want Services) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	clients := &Clients{}

	if want.Firestore {
		clients.Firestore, err = app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting firestore client: %w", err)
		}
	}

	if want.Messaging {
		clients.Messaging, err = app.Messaging(ctx)
		if err != nil {
			_ = clients.Close()
			return nil, fmt.Errorf("error getting messaging client: %w", err)
		}
	}

	return clients, nil
}

// Close releases the Firestore connection if one was opened.
func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
