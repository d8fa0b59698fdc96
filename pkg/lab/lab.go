// Package lab exports a built fabric as a containerlab topology, so the
// resolved models can be pushed to virtual switches wired exactly like the
// fabric: every uplink and MLAG peer-link member becomes a lab link.
package lab

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Topology is the containerlab topology document.
type Topology struct {
	Name     string   `yaml:"name"`
	Mgmt     *Mgmt    `yaml:"mgmt,omitempty"`
	Topology TopoSpec `yaml:"topology"`
}

// Mgmt is the management network the nodes' mgmt_ip addresses live in.
type Mgmt struct {
	Network    string `yaml:"network"`
	IPv4Subnet string `yaml:"ipv4-subnet"`
}

// TopoSpec contains the nodes and links sections.
type TopoSpec struct {
	Nodes map[string]*Node `yaml:"nodes"`
	Links []Link           `yaml:"links"`
}

// Node is a single containerlab node.
type Node struct {
	Kind     string            `yaml:"kind"`
	Image    string            `yaml:"image"`
	MgmtIPv4 string            `yaml:"mgmt-ipv4,omitempty"`
	Labels   map[string]string `yaml:"labels,omitempty"`
}

// Link is a point-to-point link between two node interfaces.
type Link struct {
	Endpoints []string `yaml:"endpoints"`
}

// Platform is the containerlab kind and image used for one device OS.
type Platform struct {
	Kind  string
	Image string
}

// DefaultPlatforms maps device OS to the lab platform.
var DefaultPlatforms = map[string]Platform{
	"nxos": {Kind: "cisco_n9kv", Image: "vrnetlab/vr-n9kv:latest"},
	"eos":  {Kind: "ceos", Image: "ceos:latest"},
}

// Options controls the export.
type Options struct {
	Name      string
	MgmtNet   string              // bse.addr.mgmt_net; omitted from the lab when empty
	Naming    spec.BaseIntf
	Platforms map[string]Platform // overrides DefaultPlatforms per OS
}

func (o Options) platform(deviceOS string) (Platform, bool) {
	if p, ok := o.Platforms[deviceOS]; ok {
		return p, true
	}
	p, ok := DefaultPlatforms[deviceOS]
	return p, ok
}

var linkDescrRe = regexp.MustCompile(`> (\S+) (\S+)$`)

// Generate builds the lab topology of devices. Port-channels and links to
// devices outside the list are skipped; each physical link appears once.
func Generate(devices []*model.Device, opts Options) (*Topology, error) {
	t := &Topology{
		Name:     opts.Name,
		Topology: TopoSpec{Nodes: make(map[string]*Node, len(devices))},
	}
	if opts.MgmtNet != "" {
		t.Mgmt = &Mgmt{Network: opts.Name + "-mgmt", IPv4Subnet: opts.MgmtNet}
	}

	for _, d := range devices {
		p, ok := opts.platform(d.OS)
		if !ok {
			return nil, fmt.Errorf("%s: %w", d.Name, util.NewLookupError("lab platform", "os", d.OS))
		}
		node := &Node{
			Kind:   p.Kind,
			Image:  p.Image,
			Labels: map[string]string{"role": d.Role, "group": d.Group},
		}
		if t.Mgmt != nil {
			node.MgmtIPv4 = d.MgmtIP
		}
		t.Topology.Nodes[d.Name] = node
	}

	seen := map[string]bool{}
	for _, d := range devices {
		for _, l := range append(append([]model.Link(nil), d.FabricLinks...), d.MLAGLinks...) {
			local, ok := containerIntf(l.Name, opts.Naming.IntfFmt)
			if !ok {
				continue
			}
			m := linkDescrRe.FindStringSubmatch(l.Descr)
			if m == nil {
				return nil, util.NewMalformedError(d.Name+" "+l.Name, l.Descr, "no remote end in description")
			}
			remoteName := m[1]
			if _, ok := t.Topology.Nodes[remoteName]; !ok {
				util.WithDevice(d.Name).Debugf("%s: remote %s not in lab", l.Name, remoteName)
				continue
			}
			remote, ok := containerIntf(m[2], opts.Naming.IntfShort)
			if !ok {
				continue
			}
			a, b := d.Name+":"+local, remoteName+":"+remote
			if b < a {
				a, b = b, a
			}
			if seen[a+" "+b] {
				continue
			}
			seen[a+" "+b] = true
			t.Topology.Links = append(t.Topology.Links, Link{Endpoints: []string{a, b}})
		}
	}
	return t, nil
}

// containerIntf maps a front-panel interface (prefix followed by the port
// number) to the container interface ethN. Other names do not map.
func containerIntf(name, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(name, prefix) {
		return "", false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil {
		return "", false
	}
	return "eth" + strconv.Itoa(n), true
}

// Marshal renders the topology as YAML.
func (t *Topology) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes <dir>/<name>.clab.yml and returns its path.
func Write(t *Topology, dir string) (string, error) {
	data, err := t.Marshal()
	if err != nil {
		return "", errors.Wrap(err, "marshalling containerlab YAML")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating lab directory")
	}
	path := filepath.Join(dir, t.Name+".clab.yml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(err, "writing containerlab YAML")
	}
	return path, nil
}
