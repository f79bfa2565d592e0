package job

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/ironsheep/emboss-gcode/internal/imaging"
	"github.com/ironsheep/emboss-gcode/internal/profile"
	"github.com/ironsheep/emboss-gcode/internal/solid"
	"github.com/ironsheep/emboss-gcode/internal/toolpath"
)

// Options describes one emboss run.
type Options struct {
	ConfigPath string
	ImagePath  string

	// PrefixPath and SuffixPath name files copied verbatim before and after
	// the program. A missing file contributes nothing.
	PrefixPath string
	SuffixPath string

	Solid solid.Spec
	Frame imaging.Framing
	Gray  imaging.GrayOptions
}

// Job is a fully resolved run, ready to render.
type Job struct {
	Machine *profile.Machine
	Sampler *imaging.RasterSampler
	Program *toolpath.Program
	Prefix  []string
	Suffix  []string
}

// Summary describes a prepared job.
type Summary struct {
	Shape       string  `json:"shape"`
	Layers      int     `json:"layers"`
	Segments    int     `json:"segments"`
	BaseRadius  float64 `json:"base_radius"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
}

// Prepare loads the profile, validates the solid, samples the image and
// reads the prefix and suffix files. Geometry is checked before the image is
// decoded so an unprintable solid fails fast.
//
// cache may be nil, in which case the image is decoded without caching.
func Prepare(opts Options, cache *imaging.ImageCache) (*Job, error) {
	m, err := profile.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	toolpath.Logger().Info("machine profile loaded", "path", opts.ConfigPath, "machine", m)

	spec := opts.Solid
	if err := solid.Validate(&spec, m); err != nil {
		return nil, err
	}
	layers := solid.LayerCount(spec.Height, m.LayerHeight)

	if opts.ImagePath == "" {
		return nil, &imaging.ImageError{Err: errors.New("no image given")}
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	img, err := cache.Load(opts.ImagePath)
	if err != nil {
		return nil, err
	}
	framed, err := opts.Frame.Apply(img)
	if err != nil {
		return nil, &imaging.ImageError{Path: opts.ImagePath, Err: err}
	}
	gray := imaging.ToGray(framed, opts.Gray)
	sampler, err := imaging.NewRasterSampler(gray, layers)
	if err != nil {
		var ie *imaging.ImageError
		if errors.As(err, &ie) && ie.Path == "" {
			ie.Path = opts.ImagePath
		}
		return nil, err
	}

	program, err := toolpath.NewProgram(m, &spec, sampler, sampler.Segments())
	if err != nil {
		return nil, err
	}

	prefix, err := ReadLines(opts.PrefixPath)
	if err != nil {
		return nil, fmt.Errorf("prefix: %w", err)
	}
	suffix, err := ReadLines(opts.SuffixPath)
	if err != nil {
		return nil, fmt.Errorf("suffix: %w", err)
	}

	return &Job{
		Machine: m,
		Sampler: sampler,
		Program: program,
		Prefix:  prefix,
		Suffix:  suffix,
	}, nil
}

// Summary reports the dimensions of the prepared job.
func (j *Job) Summary() Summary {
	b := j.Sampler.Bounds()
	return Summary{
		Shape:       j.Program.Solid.Shape.Name(),
		Layers:      j.Program.Layers,
		Segments:    j.Program.Segments,
		BaseRadius:  j.Program.Solid.Shape.BaseRadius(),
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
	}
}

// Write renders the program to w, checking ctx while it runs. It returns
// the number of lines written.
func (j *Job) Write(ctx context.Context, w io.Writer) (int, error) {
	return toolpath.Render(w, j.Program, j.Prefix, j.Suffix, ctx.Err)
}

// OutputMode is the permission of newly written G-code files, before umask.
const OutputMode os.FileMode = 0o644

// WriteFile renders the program to path. The output goes to a pending file
// that is synced and renamed into place only once rendering succeeds, so a
// failed run leaves any existing file untouched. A replaced file keeps its
// permissions; a new one gets OutputMode.
func (j *Job) WriteFile(ctx context.Context, path string) (int, error) {
	f, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(OutputMode),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer f.Cleanup()

	n, err := j.Write(ctx, f)
	if err != nil {
		return n, err
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return n, fmt.Errorf("commit output: %w", err)
	}
	return n, nil
}

// WriteBuffered renders the whole program into memory and copies it to w
// only on success. Used for streams that cannot be renamed, such as stdout.
func (j *Job) WriteBuffered(ctx context.Context, w io.Writer) (int, error) {
	var buf bytes.Buffer
	n, err := j.Write(ctx, &buf)
	if err != nil {
		return n, err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return n, fmt.Errorf("write output: %w", err)
	}
	return n, nil
}

// Run prepares the job and writes it to outputPath, or to stdout when
// outputPath is empty or "-".
func Run(ctx context.Context, opts Options, cache *imaging.ImageCache, outputPath string, stdout io.Writer) (*Job, int, error) {
	j, err := Prepare(opts, cache)
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return j, 0, err
	}

	var n int
	if outputPath == "" || outputPath == "-" {
		n, err = j.WriteBuffered(ctx, stdout)
	} else {
		n, err = j.WriteFile(ctx, outputPath)
	}
	return j, n, err
}

// ReadLines reads a text file as lines without their terminators. An empty
// path or a missing file yields no lines.
func ReadLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		toolpath.Logger().Debug("optional file not found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
