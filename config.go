package worldmesh

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

type Config struct {
	Seed        int64               `hcl:"seed"`
	Concurrency int                 `hcl:"concurrency,optional"`
	World       *WorldConfigBlock   `hcl:"world,block"`
	Preview     *PreviewConfigBlock `hcl:"preview,block"`
}

type WorldConfigBlock struct {
	MaxChunks   int     `hcl:"max_chunks,optional"`
	MaxInflight int     `hcl:"max_inflight,optional"`
	ViewRadius  int     `hcl:"view_radius,optional"`
	LODScale    float64 `hcl:"lod_scale,optional"`
	MaxLOD      int     `hcl:"max_lod,optional"`
}

type PreviewConfigBlock struct {
	Radius  int    `hcl:"radius,optional"`
	Out     string `hcl:"out,optional"`
	Shading bool   `hcl:"shading,optional"`
}

func newHCLEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{},
	}
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config
	evalCtx := newHCLEvalContext()
	err := hclsimple.DecodeFile(path, evalCtx, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.World == nil {
		c.World = &WorldConfigBlock{}
	}
	if c.World.MaxChunks == 0 {
		c.World.MaxChunks = 1024
	}
	if c.World.MaxInflight == 0 {
		c.World.MaxInflight = 32
	}
	if c.World.ViewRadius == 0 {
		c.World.ViewRadius = 8
	}
	if c.Preview == nil {
		c.Preview = &PreviewConfigBlock{}
	}
	if c.Preview.Radius == 0 {
		c.Preview.Radius = 8
	}
	if c.Preview.Out == "" {
		c.Preview.Out = "preview.png"
	}
}

// LoaderConfig builds the loader wiring from the parsed configuration.
func (c *Config) LoaderConfig() LoaderConfig {
	return LoaderConfig{
		Seed:        c.Seed,
		MaxChunks:   c.World.MaxChunks,
		MaxInflight: c.World.MaxInflight,
		Concurrency: c.Concurrency,
		MaxLOD:      uint8(c.World.MaxLOD),
	}
}

// ViewConfig builds the view-query parameters from the parsed configuration.
func (c *Config) ViewConfig() ViewConfig {
	return ViewConfig{
		Radius:   c.World.ViewRadius,
		LODScale: c.World.LODScale,
		MaxLOD:   uint8(c.World.MaxLOD),
	}
}
