// Package mongodb owns the process-wide MongoDB client. The client is created
// lazily on first use and shared by every repository for the lifetime of the
// process.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"sustainbite/domain"
)

const defaultConnectTimeout = 10 * time.Second

var ErrInvalidURI = errors.New(`invalid scheme, expected connection string to start with "mongodb://" or "mongodb+srv://"`)

type (
	Config struct {
		URI            string
		Database       string
		ConnectTimeout time.Duration
	}

	// DialFunc opens and verifies a client. The default dials the configured URI
	// and pings the primary.
	DialFunc func(ctx context.Context) (*mongo.Client, error)

	// ConnectHook runs once per established connection, before any caller
	// sees the client.
	ConnectHook func(ctx context.Context, db *mongo.Database) error

	Accessor struct {
		cfg       Config
		dial      DialFunc
		onConnect ConnectHook

		mu     sync.RWMutex
		client *mongo.Client
		group  singleflight.Group
	}
)

func NewAccessor(cfg Config) (*Accessor, error) {
	if !strings.HasPrefix(cfg.URI, "mongodb://") && !strings.HasPrefix(cfg.URI, "mongodb+srv://") {
		return nil, ErrInvalidURI
	}
	if cfg.Database == "" {
		return nil, errors.New("mongodb database name is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}

	a := &Accessor{cfg: cfg}
	a.dial = a.defaultDial
	return a, nil
}

// NewAccessorWithDial is used by tests to observe how often a connection is
// established.
func NewAccessorWithDial(database string, dial DialFunc) *Accessor {
	return &Accessor{
		cfg:  Config{Database: database, ConnectTimeout: defaultConnectTimeout},
		dial: dial,
	}
}

// OnConnect registers hook to run after every successful dial. A failing hook
// fails the connect, which is then retried by the next caller. It must be set
// before first use.
func (a *Accessor) OnConnect(hook ConnectHook) {
	a.onConnect = hook
}

func (a *Accessor) defaultDial(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Client returns the shared client, connecting on first use. Concurrent first
// callers wait on a single in-flight connect and all receive the same client.
// A failed connect is not remembered, so the next call tries again.
func (a *Accessor) Client(ctx context.Context) (*mongo.Client, error) {
	if client := a.current(); client != nil {
		return client, nil
	}

	ch := a.group.DoChan("connect", func() (interface{}, error) {
		if client := a.current(); client != nil {
			return client, nil
		}

		// The connect outlives the request that triggered it: other requests
		// may be waiting on the same flight.
		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ConnectTimeout)
		defer cancel()

		client, err := a.dial(dialCtx)
		if err != nil {
			log.Errorf("mongodb connect failed: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		if a.onConnect != nil {
			if err := a.onConnect(dialCtx, client.Database(a.cfg.Database)); err != nil {
				log.Errorf("mongodb connect hook failed: %v", err)
				_ = client.Disconnect(context.Background())
				return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
			}
		}

		a.mu.Lock()
		a.client = client
		a.mu.Unlock()

		log.Infof("Connected to MongoDB (database %q)", a.cfg.Database)
		return client, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, ctx.Err())
	}
}

func (a *Accessor) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(a.cfg.Database), nil
}

func (a *Accessor) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := a.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Disconnect closes the shared client if one was ever opened.
func (a *Accessor) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	client := a.client
	a.client = nil
	a.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (a *Accessor) current() *mongo.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client
}

// StoreError marks a failed driver call as ErrStoreUnavailable while keeping
// the driver error in the chain.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
