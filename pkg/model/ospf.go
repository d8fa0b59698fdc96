package model

// OSPFProcess is one OSPF instance on a device.
type OSPFProcess struct {
	Process     string `json:"process" yaml:"process"`
	VRF         string `json:"vrf" yaml:"vrf"`
	RID         string `json:"rid,omitempty" yaml:"rid,omitempty"`
	BFD         bool   `json:"bfd,omitempty" yaml:"bfd,omitempty"`
	DefaultOrig string `json:"default_orig,omitempty" yaml:"default_orig,omitempty"`

	Interfaces map[string]OSPFInterface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	AreaTypes  map[string]string        `json:"area_type,omitempty" yaml:"area_type,omitempty"`
	AuthAreas  []string                 `json:"auth_areas,omitempty" yaml:"auth_areas,omitempty"`

	AreaRanges []OSPFSummary `json:"area_range,omitempty" yaml:"area_range,omitempty"`
	Summaries  []OSPFSummary `json:"summary_address,omitempty" yaml:"summary_address,omitempty"`
	Redist     []Redist      `json:"redist,omitempty" yaml:"redist,omitempty"`
}

// OSPFInterface holds the settings of one OSPF interface.
type OSPFInterface struct {
	Area           string `json:"area" yaml:"area"`
	Cost           int    `json:"cost,omitempty" yaml:"cost,omitempty"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	Passive        bool   `json:"passive,omitempty" yaml:"passive,omitempty"`
	BFD            bool   `json:"bfd,omitempty" yaml:"bfd,omitempty"`
	Authentication string `json:"authentication,omitempty" yaml:"authentication,omitempty"`
}

// OSPFSummary is an area range (Area set) or a summary address.
type OSPFSummary struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Area   string `json:"area,omitempty" yaml:"area,omitempty"`
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}
