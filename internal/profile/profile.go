package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"
)

// ConfigError reports a missing or malformed machine profile field.
type ConfigError struct {
	// Path is the profile file, empty when parsed from memory.
	Path string

	// Field is the dotted field name (e.g. "printer.feed_rate"), empty for
	// whole-file failures such as I/O or YAML syntax errors.
	Field string

	Err error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrMissing is wrapped by ConfigError when a required field is absent.
var ErrMissing = errors.New("required field missing")

// Comments holds descriptive, non-functional profile metadata.
type Comments struct {
	Manufacturer string
	Model        string
	Material     string
}

// Commands are the literal machine commands emitted around extrusion.
type Commands struct {
	// SetFlow is followed by " S<rate>" when emitted.
	SetFlow string
	Start   string
	Stop    string
}

// RaftPass configures one of the two raft layers.
type RaftPass struct {
	FeedMultiplier float64
	FlowMultiplier float64

	// CruiseHeight is the Z of the pass in mm. A pass with a cruise height of
	// zero or less is skipped.
	CruiseHeight float64
}

// Enabled reports whether the pass should be printed.
func (p RaftPass) Enabled() bool { return p.CruiseHeight > 0 }

// Machine is an immutable machine profile. Rates are in mm/min, lengths in mm
// and MaxOverhang in degrees from horizontal.
type Machine struct {
	Comments Comments

	FeedRate       float64
	MoveRate       float64
	FlowRate       float64
	LayerHeight    float64
	ExtrusionWidth float64
	MaxHeight      float64
	MaxRadius      float64
	MaxOverhang    float64

	Commands Commands

	RaftBase      RaftPass
	RaftInterface RaftPass
}

// LogValue renders the profile for verbose logging.
func (m *Machine) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Group("comments",
			slog.String("manufacturer", m.Comments.Manufacturer),
			slog.String("model", m.Comments.Model),
			slog.String("material", m.Comments.Material),
		),
		slog.Group("printer",
			slog.Float64("feed_rate", m.FeedRate),
			slog.Float64("move_rate", m.MoveRate),
			slog.Float64("flow_rate", m.FlowRate),
			slog.Float64("layer_height", m.LayerHeight),
			slog.Float64("extrusion_width", m.ExtrusionWidth),
			slog.Float64("max_height", m.MaxHeight),
			slog.Float64("max_radius", m.MaxRadius),
			slog.Float64("max_overhang", m.MaxOverhang),
		),
		slog.Group("gcode",
			slog.String("flow", m.Commands.SetFlow),
			slog.String("start", m.Commands.Start),
			slog.String("stop", m.Commands.Stop),
		),
		slog.Group("raft_base",
			slog.Float64("feed", m.FeedRate*m.RaftBase.FeedMultiplier),
			slog.Float64("flow", m.FlowRate*m.RaftBase.FlowMultiplier),
			slog.Float64("cruise_height", m.RaftBase.CruiseHeight),
		),
		slog.Group("raft_interface",
			slog.Float64("feed", m.FeedRate*m.RaftInterface.FeedMultiplier),
			slog.Float64("flow", m.FlowRate*m.RaftInterface.FlowMultiplier),
			slog.Float64("cruise_height", m.RaftInterface.CruiseHeight),
		),
	)
}

// fileFormat mirrors the YAML layout. Pointers distinguish "absent" from zero.
type fileFormat struct {
	Comments struct {
		Manufacturer string `yaml:"printer_manufacturer"`
		Model        string `yaml:"printer_model"`
		Material     string `yaml:"extruded_material"`
	} `yaml:"comments"`

	Printer struct {
		FeedRate       *float64 `yaml:"feed_rate"`
		MoveRate       *float64 `yaml:"move_rate"`
		FlowRate       *float64 `yaml:"flow_rate"`
		LayerHeight    *float64 `yaml:"layer_height"`
		ExtrusionWidth *float64 `yaml:"extrusion_width"`
		MaxHeight      *float64 `yaml:"max_height"`
		MaxRadius      *float64 `yaml:"max_radius"`
		MaxOverhang    *float64 `yaml:"max_overhang"`
	} `yaml:"printer"`

	Gcode struct {
		Flow  *string `yaml:"gcode_flow"`
		Start *string `yaml:"gcode_start"`
		Stop  *string `yaml:"gcode_stop"`
	} `yaml:"gcode"`

	RaftBase      raftFormat `yaml:"raft_base"`
	RaftInterface raftFormat `yaml:"raft_interface"`
}

type raftFormat struct {
	FeedMultiplier *float64 `yaml:"feed_multiplier"`
	FlowMultiplier *float64 `yaml:"flow_multiplier"`
	CruiseHeight   *float64 `yaml:"cruise_height"`
}

// Load reads and validates a profile file.
func Load(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	m, err := Parse(data)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes and validates a profile from YAML.
func Parse(data []byte) (*Machine, error) {
	var f fileFormat
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, &ConfigError{Err: err}
	}

	c := checker{}
	m := &Machine{
		Comments: Comments{
			Manufacturer: f.Comments.Manufacturer,
			Model:        f.Comments.Model,
			Material:     f.Comments.Material,
		},
		FeedRate:       c.positive("printer.feed_rate", f.Printer.FeedRate),
		MoveRate:       c.positive("printer.move_rate", f.Printer.MoveRate),
		FlowRate:       c.positive("printer.flow_rate", f.Printer.FlowRate),
		LayerHeight:    c.positive("printer.layer_height", f.Printer.LayerHeight),
		ExtrusionWidth: c.positive("printer.extrusion_width", f.Printer.ExtrusionWidth),
		MaxHeight:      c.positive("printer.max_height", f.Printer.MaxHeight),
		MaxRadius:      c.positive("printer.max_radius", f.Printer.MaxRadius),
		MaxOverhang:    c.angle("printer.max_overhang", f.Printer.MaxOverhang),
		Commands: Commands{
			SetFlow: c.command("gcode.gcode_flow", f.Gcode.Flow),
			Start:   c.command("gcode.gcode_start", f.Gcode.Start),
			Stop:    c.command("gcode.gcode_stop", f.Gcode.Stop),
		},
		RaftBase:      c.raft("raft_base", f.RaftBase),
		RaftInterface: c.raft("raft_interface", f.RaftInterface),
	}
	if c.err != nil {
		return nil, c.err
	}
	return m, nil
}

// checker records the first field error encountered.
type checker struct {
	err error
}

func (c *checker) fail(field string, err error) {
	if c.err == nil {
		c.err = &ConfigError{Field: field, Err: err}
	}
}

func (c *checker) number(field string, v *float64) float64 {
	if v == nil {
		c.fail(field, ErrMissing)
		return 0
	}
	return *v
}

func (c *checker) positive(field string, v *float64) float64 {
	n := c.number(field, v)
	if v != nil && n <= 0 {
		c.fail(field, fmt.Errorf("must be greater than zero, got %.2f", n))
	}
	return n
}

func (c *checker) angle(field string, v *float64) float64 {
	n := c.number(field, v)
	if v != nil && (n <= 0 || n >= 90) {
		c.fail(field, fmt.Errorf("must be between 0 and 90 degrees, got %.2f", n))
	}
	return n
}

func (c *checker) command(field string, v *string) string {
	if v == nil || *v == "" {
		c.fail(field, ErrMissing)
		return ""
	}
	return *v
}

func (c *checker) raft(section string, r raftFormat) RaftPass {
	p := RaftPass{
		FeedMultiplier: c.number(section+".feed_multiplier", r.FeedMultiplier),
		FlowMultiplier: c.number(section+".flow_multiplier", r.FlowMultiplier),
		CruiseHeight:   c.number(section+".cruise_height", r.CruiseHeight),
	}
	if p.Enabled() && p.FeedMultiplier <= 0 {
		c.fail(section+".feed_multiplier", fmt.Errorf("must be greater than zero, got %.2f", p.FeedMultiplier))
	}
	return p
}
