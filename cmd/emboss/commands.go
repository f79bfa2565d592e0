package main

import (
	"fmt"
	"image"

	"github.com/spf13/pflag"

	"github.com/ironsheep/emboss-gcode/internal/imaging"
	"github.com/ironsheep/emboss-gcode/internal/job"
	"github.com/ironsheep/emboss-gcode/internal/solid"
)

// GlobalCommand holds the flags that come before the shape subcommand.
type GlobalCommand struct {
	*pflag.FlagSet

	Image  string
	Config string
	Prefix string
	Suffix string
	Output string

	Height       float64
	ZSmooth      bool
	BottomLayers int
	EmbossFactor float64

	Region string
	Crop   []int
	Width  int

	Invert    bool
	Gamma     float64
	Contrast  float64
	Lightness bool

	Verbose int
	Version bool
}

// NewGlobalCommand returns the top-level flag set.
func NewGlobalCommand() (cmd *GlobalCommand) {
	cmd = &GlobalCommand{
		FlagSet: pflag.NewFlagSet("emboss", pflag.ContinueOnError),
	}

	cmd.StringVarP(&cmd.Image, "image", "i", "", "Artwork to emboss (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG)")
	cmd.StringVarP(&cmd.Config, "config", "c", "", "Machine profile YAML")
	cmd.StringVarP(&cmd.Prefix, "prefix", "p", "", "G-code file copied before the program")
	cmd.StringVarP(&cmd.Suffix, "suffix", "s", "", "G-code file copied after the program")
	cmd.StringVarP(&cmd.Output, "output", "o", "", "Output G-code file (default stdout)")

	cmd.Float64VarP(&cmd.Height, "height", "H", 40, "Height of the object in mm")
	cmd.BoolVarP(&cmd.ZSmooth, "zsmooth", "z", false, "Use continuous Z movement")
	cmd.IntVarP(&cmd.BottomLayers, "bottom-layers", "l", 0, "Number of layers in the floor")
	cmd.Float64VarP(&cmd.EmbossFactor, "emboss-factor", "e", 0.40, "Minimum ratio of embossing feed rate over normal feed rate")

	cmd.StringVar(&cmd.Region, "region", "", "Emboss only a named region of the artwork (top-left, left-half, center, ...)")
	cmd.IntSliceVar(&cmd.Crop, "crop", nil, "Crop the artwork to x1,y1,x2,y2 pixels")
	cmd.IntVar(&cmd.Width, "width", 0, "Resample the artwork to this width; sets the segments per layer")

	cmd.BoolVar(&cmd.Invert, "invert", false, "Invert the artwork")
	cmd.Float64Var(&cmd.Gamma, "gamma", 0, "Gamma correction before sampling (1 = none)")
	cmd.Float64Var(&cmd.Contrast, "contrast", 0, "Contrast change in [-1, 1] before sampling")
	cmd.BoolVar(&cmd.Lightness, "lightness", false, "Sample CIE L* lightness instead of luma")

	cmd.CountVarP(&cmd.Verbose, "verbose", "v", "Increase verbosity (-v, -vv)")
	cmd.BoolVar(&cmd.Version, "version", false, "Print version information")

	cmd.SetInterspersed(false)

	return
}

// Options builds the job options for shape.
func (cmd *GlobalCommand) Options(shape solid.Shape) (job.Options, error) {
	mode := imaging.LumaMode
	if cmd.Lightness {
		mode = imaging.LightnessMode
	}

	frame := imaging.Framing{Region: cmd.Region, Width: cmd.Width}
	if len(cmd.Crop) > 0 {
		if len(cmd.Crop) != 4 {
			return job.Options{}, fmt.Errorf("--crop needs 4 values, got %d", len(cmd.Crop))
		}
		frame.Rect = image.Rect(cmd.Crop[0], cmd.Crop[1], cmd.Crop[2], cmd.Crop[3])
	}

	return job.Options{
		ConfigPath: cmd.Config,
		ImagePath:  cmd.Image,
		PrefixPath: cmd.Prefix,
		SuffixPath: cmd.Suffix,
		Solid: solid.Spec{
			Shape:        shape,
			Height:       cmd.Height,
			BottomLayers: cmd.BottomLayers,
			EmbossFactor: cmd.EmbossFactor,
			Continuous:   cmd.ZSmooth,
		},
		Frame: frame,
		Gray: imaging.GrayOptions{
			Mode:     mode,
			Gamma:    cmd.Gamma,
			Contrast: cmd.Contrast,
			Invert:   cmd.Invert,
		},
	}, nil
}

// ShapeCommand is a subcommand that selects the solid to print.
type ShapeCommand interface {
	Parse(args []string) error
	FlagUsages() string
	Shape() solid.Shape
}

// CylinderCommand selects a right cylinder.
type CylinderCommand struct {
	*pflag.FlagSet

	Radius float64
}

// NewCylinderCommand returns the cylinder subcommand.
func NewCylinderCommand() (cmd *CylinderCommand) {
	cmd = &CylinderCommand{
		FlagSet: pflag.NewFlagSet("cylinder", pflag.ContinueOnError),
	}

	cmd.Float64VarP(&cmd.Radius, "radius", "r", 25, "Radius of a right cylinder in mm")
	cmd.SetInterspersed(false)

	return
}

// Shape returns the cylinder described by the flags.
func (cmd *CylinderCommand) Shape() solid.Shape {
	return solid.Cylinder{Radius: cmd.Radius}
}

// ConeCommand selects a cone that narrows towards the top.
type ConeCommand struct {
	*pflag.FlagSet

	TopRadius    float64
	BottomRadius float64
}

// NewConeCommand returns the cone subcommand.
func NewConeCommand() (cmd *ConeCommand) {
	cmd = &ConeCommand{
		FlagSet: pflag.NewFlagSet("cone", pflag.ContinueOnError),
	}

	cmd.Float64Var(&cmd.TopRadius, "rtop", 10, "Top radius of a cone in mm")
	cmd.Float64Var(&cmd.BottomRadius, "rbot", 25, "Bottom radius of a cone in mm")
	cmd.SetInterspersed(false)

	return
}

// Shape returns the cone described by the flags.
func (cmd *ConeCommand) Shape() solid.Shape {
	return solid.Cone{TopRadius: cmd.TopRadius, BottomRadius: cmd.BottomRadius}
}

// GlobeCommand selects a sphere truncated top and bottom.
type GlobeCommand struct {
	*pflag.FlagSet

	Radius float64
}

// NewGlobeCommand returns the globe subcommand.
func NewGlobeCommand() (cmd *GlobeCommand) {
	cmd = &GlobeCommand{
		FlagSet: pflag.NewFlagSet("globe", pflag.ContinueOnError),
	}

	cmd.Float64VarP(&cmd.Radius, "radius", "r", 25, "Radius of a truncated globe in mm")
	cmd.SetInterspersed(false)

	return
}

// Shape returns the globe described by the flags.
func (cmd *GlobeCommand) Shape() solid.Shape {
	return solid.Globe{Radius: cmd.Radius}
}

// shapeCommands returns a fresh set of shape subcommands keyed by name.
func shapeCommands() map[string]ShapeCommand {
	return map[string]ShapeCommand{
		"cylinder": NewCylinderCommand(),
		"cone":     NewConeCommand(),
		"globe":    NewGlobeCommand(),
	}
}
