package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// fileExt is the extension of device documents.
const fileExt = ".yml"

// FileStore keeps one YAML document per device, named after the device.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// the first Write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Write renders every device first so a marshal failure leaves the
// directory untouched. Each file is replaced atomically.
func (s *FileStore) Write(ctx context.Context, devices []*model.Device) error {
	docs := make(map[string][]byte, len(devices))
	for _, d := range devices {
		data, err := marshalDevice(d)
		if err != nil {
			return errors.Wrapf(err, "rendering %s", d.Name)
		}
		docs[d.Name] = data
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	for _, d := range devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeAtomic(s.path(d.Name), docs[d.Name]); err != nil {
			return err
		}
	}

	stale, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range stale {
		if _, ok := docs[name]; ok {
			continue
		}
		if err := os.Remove(s.path(name)); err != nil {
			return errors.Wrapf(err, "removing stale %s", name)
		}
		util.WithDevice(name).Info("removed stale host_vars")
	}
	util.WithComponent("store").Infof("wrote %d devices to %s", len(devices), s.dir)
	return nil
}

func marshalDevice(d *model.Device) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fabricgen-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "replacing %s", path)
}

// Read parses one device document. Unknown keys are rejected.
func (s *FileStore) Read(_ context.Context, name string) (*model.Device, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, util.NewLookupError("device", s.dir, name)
	}
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	d := &model.Device{}
	if err := dec.Decode(d); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", s.path(name))
	}
	return d, nil
}

// List returns the devices with a document in the directory. Other YAML
// files, such as vars files sharing the directory, are not devices and are
// never swept by Write. A missing directory holds no devices.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if !s.isDevice(ctx, name) {
			util.WithComponent("store").Debugf("%s: not a device document", e.Name())
			continue
		}
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// isDevice reports whether <name>.yml is a device document named after its
// file.
func (s *FileStore) isDevice(ctx context.Context, name string) bool {
	d, err := s.Read(ctx, name)
	return err == nil && d.Name == name
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
