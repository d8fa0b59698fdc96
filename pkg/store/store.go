// Package store persists resolved device models: one YAML document per
// device in a host_vars directory, or one Redis hash per device.
package store

import (
	"context"
	"fmt"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/settings"
)

// Store kinds accepted by Open.
const (
	KindFile  = "file"
	KindRedis = "redis"
)

// Store writes and reads back device models.
type Store interface {
	// Write replaces the stored models with devices. Models of devices no
	// longer in the fabric are removed.
	Write(ctx context.Context, devices []*model.Device) error

	// Read returns one stored model, or a *util.LookupError.
	Read(ctx context.Context, name string) (*model.Device, error)

	// List returns the stored device names in natural order.
	List(ctx context.Context) ([]string, error)

	Close() error
}

// Open returns the store of the given kind configured from s.
func Open(kind string, s *settings.Settings) (Store, error) {
	switch kind {
	case KindFile:
		return NewFileStore(s.GetOutputDir()), nil
	case KindRedis:
		return NewRedisStore(s.GetRedisAddr(), s.RedisDB), nil
	}
	return nil, fmt.Errorf("unknown store %q (valid: %s, %s)", kind, KindFile, KindRedis)
}
