package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/maruel/natural"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// DeviceTable is the key prefix of device hashes: "FABRIC_DEVICE|<name>".
const DeviceTable = "FABRIC_DEVICE"

// modelField holds the JSON encoding of the whole device model. The other
// fields of the hash are flat copies for quick lookups with redis-cli.
const modelField = "model"

// RedisStore keeps one hash per device.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store on the given Redis database. No connection
// is made until the first call.
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

func deviceKey(name string) string {
	return fmt.Sprintf("%s|%s", DeviceTable, name)
}

// Fields returns the hash of one device.
func Fields(d *model.Device) (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"role":          d.Role,
		"group":         d.Group,
		"mgmt_ip":       d.MgmtIP,
		"bgp_as":        d.ASN,
		"allowed_vlans": d.AllowedVLANs,
		"interfaces":    strconv.Itoa(len(d.Interfaces)),
		modelField:      string(data),
	}, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Write replaces every device hash in one transaction, deleting hashes of
// devices that are no longer in the fabric.
func (s *RedisStore) Write(ctx context.Context, devices []*model.Device) error {
	current := map[string]bool{}
	hashes := make(map[string]map[string]any, len(devices))
	for _, d := range devices {
		fields, err := Fields(d)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", d.Name)
		}
		hashes[d.Name] = fields
		current[d.Name] = true
	}

	existing, err := s.List(ctx)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range existing {
			if !current[name] {
				pipe.Del(ctx, deviceKey(name))
			}
		}
		for _, d := range devices {
			key := deviceKey(d.Name)
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, hashes[d.Name])
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "writing device hashes")
	}
	util.WithComponent("store").Infof("wrote %d devices to redis db %d", len(devices), s.client.Options().DB)
	return nil
}

// Read decodes the model field of one device hash.
func (s *RedisStore) Read(ctx context.Context, name string) (*model.Device, error) {
	data, err := s.client.HGet(ctx, deviceKey(name), modelField).Result()
	if err == redis.Nil {
		return nil, util.NewLookupError("device", s.client.Options().Addr, name)
	}
	if err != nil {
		return nil, err
	}
	d := &model.Device{}
	if err := json.Unmarshal([]byte(data), d); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", deviceKey(name))
	}
	return d, nil
}

// List scans the device table.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, DeviceTable+"|*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), DeviceTable+"|"))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "listing device hashes")
	}
	// SCAN may return a key more than once.
	names = lo.Uniq(names)
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// Close closes the connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
