// Package redis persists the member store in Redis.
//
// The members are kept as one JSON array under "<prefix>:members" and the
// layout version under "<prefix>:version". Both keys are written in a
// single MULTI/EXEC transaction.
package redis

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/familytree/pkg/family"
	fio "github.com/matzehuels/familytree/pkg/io"
	"github.com/matzehuels/familytree/pkg/store"
)

// DefaultPrefix namespaces the keys when Config.Prefix is empty.
const DefaultPrefix = "familytree"

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Backend implements [store.Backend] on a Redis client.
type Backend struct {
	rdb    *goredis.Client
	prefix string
}

var _ store.Backend = (*Backend)(nil)

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewFromClient(rdb, cfg.Prefix), nil
}

// NewFromClient wraps an existing client. The backend takes ownership and
// closes it on Close.
func NewFromClient(rdb *goredis.Client, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{rdb: rdb, prefix: prefix}
}

// MembersKey returns the key holding the member array.
func (b *Backend) MembersKey() string { return b.prefix + ":members" }

// VersionKey returns the key holding the layout version.
func (b *Backend) VersionKey() string { return b.prefix + ":version" }

func (b *Backend) Load(ctx context.Context) ([]family.Member, int64, error) {
	vals, err := b.rdb.MGet(ctx, b.MembersKey(), b.VersionKey()).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis mget: %w", err)
	}
	return decode(vals[0], vals[1], b.MembersKey())
}

func (b *Backend) Save(ctx context.Context, members []family.Member, version int64) error {
	var buf bytes.Buffer
	if err := fio.WriteJSON(members, &buf); err != nil {
		return err
	}
	_, err := b.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, b.MembersKey(), buf.Bytes(), 0)
		pipe.Set(ctx, b.VersionKey(), version, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.rdb.Close()
}

// decode turns MGET results into members and a version. Missing keys
// come back as nil and mean an empty store.
func decode(rawMembers, rawVersion any, source string) ([]family.Member, int64, error) {
	members := []family.Member{}
	if s, ok := rawMembers.(string); ok {
		var err error
		if members, err = fio.ReadJSON(bytes.NewBufferString(s)); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", source, err)
		}
	}

	var version int64
	if s, ok := rawVersion.(string); ok {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("decode version %q: %w", s, err)
		}
		version = v
	}
	return members, version, nil
}
