package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// VarsDir is the default vars directory
var VarsDir = "vars"

// Vars file names.
const (
	BaseFile      = "base.yml"
	FabricFile    = "fabric.yml"
	TenantFile    = "services_tenant.yml"
	InterfaceFile = "services_interface.yml"
	RoutingFile   = "services_routing.yml"
)

// Loader reads the vars directory.
type Loader struct {
	varsDir string
}

// NewLoader creates a new vars loader
func NewLoader(varsDir string) *Loader {
	if varsDir == "" {
		varsDir = VarsDir
	}
	return &Loader{varsDir: varsDir}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.varsDir
}

// Load loads all vars files. The routing file is optional; every other file
// is required.
func (l *Loader) Load() (*Vars, error) {
	vars := &Vars{}

	var base struct {
		Bse *Base `yaml:"bse"`
	}
	if err := l.loadFile(BaseFile, &base, true); err != nil {
		return nil, fmt.Errorf("loading base vars: %w", err)
	}
	if base.Bse == nil {
		return nil, util.NewMalformedError(BaseFile, "", "missing top-level key bse")
	}
	vars.Base = *base.Bse

	var fbc struct {
		Fbc *Fabric `yaml:"fbc"`
	}
	if err := l.loadFile(FabricFile, &fbc, true); err != nil {
		return nil, fmt.Errorf("loading fabric vars: %w", err)
	}
	if fbc.Fbc == nil {
		return nil, util.NewMalformedError(FabricFile, "", "missing top-level key fbc")
	}
	vars.Fabric = *fbc.Fbc

	var tnt struct {
		SvcTnt *TenantServices `yaml:"svc_tnt"`
	}
	if err := l.loadFile(TenantFile, &tnt, true); err != nil {
		return nil, fmt.Errorf("loading tenant services: %w", err)
	}
	if tnt.SvcTnt == nil {
		return nil, util.NewMalformedError(TenantFile, "", "missing top-level key svc_tnt")
	}
	vars.Tenants = *tnt.SvcTnt

	var intf struct {
		SvcIntf *InterfaceServices `yaml:"svc_intf"`
	}
	if err := l.loadFile(InterfaceFile, &intf, true); err != nil {
		return nil, fmt.Errorf("loading interface services: %w", err)
	}
	if intf.SvcIntf == nil {
		return nil, util.NewMalformedError(InterfaceFile, "", "missing top-level key svc_intf")
	}
	vars.Interfaces = *intf.SvcIntf

	var rte struct {
		SvcRte *Routing `yaml:"svc_rte"`
	}
	if err := l.loadFile(RoutingFile, &rte, false); err != nil {
		return nil, fmt.Errorf("loading routing services: %w", err)
	}
	if rte.SvcRte != nil {
		vars.Routing = *rte.SvcRte
	}
	vars.Routing.Adv = vars.Routing.Adv.WithDefaults()
	if err := NewResolver(vars.Routing.Adv.PrefixLists).ExpandRouting(&vars.Routing); err != nil {
		return nil, fmt.Errorf("loading routing services: %w", err)
	}

	util.WithField("dir", l.varsDir).Debugf("loaded %d tenants", len(vars.Tenants.Tenants))
	return vars, nil
}

// loadFile decodes one vars file strictly. A missing optional file leaves out
// untouched.
func (l *Loader) loadFile(name string, out interface{}, required bool) error {
	path := filepath.Join(l.varsDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := Decode(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Decode decodes a YAML document rejecting unknown keys. Type and key errors
// are reported as malformed input.
func Decode(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", util.ErrMalformed, err)
	}
	return nil
}
