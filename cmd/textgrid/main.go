// Command textgrid lays text out on a sprite grid and renders its silhouette
// SVG.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/textgrid"
	"github.com/ryanlewis/textgrid/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	in          string
	out         string
	svgOut      string
	metaOut     string
	format      string
	listFonts   bool
	showVersion bool
	showHelp    bool
	debugMode   bool
	debugFile   string
	debugPretty bool

	// quick mode, used when text is given on the command line
	cols     int
	rows     int
	cell     int
	align    string
	overflow string
	family   string
	prompt   string
	scale    int
}

func newFlagSet(cfg *config, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("textgrid", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&cfg.in, "in", "i", "", "Read the request from a JSON or YAML file (- for stdin)")
	fs.StringVarP(&cfg.out, "out", "o", "", "Write the response to a file instead of stdout")
	fs.StringVar(&cfg.svgOut, "svg-out", "", "Write the silhouette SVG to a file")
	fs.StringVar(&cfg.metaOut, "metadata-out", "", "Write atlas metadata JSON to a file")
	fs.StringVar(&cfg.format, "format", "json", "Response format: json or yaml")
	fs.BoolVar(&cfg.listFonts, "list-fonts", false, "List allowlisted font families and exit")
	fs.BoolVarP(&cfg.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&cfg.showHelp, "help", "h", false, "Show help message")
	fs.BoolVar(&cfg.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&cfg.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&cfg.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")

	fs.IntVar(&cfg.cols, "cols", 8, "Grid columns (quick mode)")
	fs.IntVar(&cfg.rows, "rows", 1, "Grid rows (quick mode)")
	fs.IntVar(&cfg.cell, "cell", 64, "Cell width and height in pixels (quick mode)")
	fs.StringVar(&cfg.align, "align", "center", "Line alignment: left, center or right (quick mode)")
	fs.StringVar(&cfg.overflow, "overflow", "ellipsis", "Overflow policy: truncate, ellipsis or error (quick mode)")
	fs.StringVarP(&cfg.family, "font", "f", "", "Font family (quick mode, default Inter)")
	fs.StringVar(&cfg.prompt, "prompt", "clean sprite lettering", "Stylizer prompt (quick mode)")
	fs.IntVar(&cfg.scale, "scale", 1, "Atlas scale for --metadata-out (1-4)")
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg, stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if cfg.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if cfg.showVersion {
		fmt.Fprintf(stdout, "textgrid version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}
	if cfg.listFonts {
		listFonts(stdout)
		return 0
	}

	outFormat, err := textgrid.ParseFormat(cfg.format)
	if err != nil || outFormat == textgrid.FormatAuto {
		fmt.Fprintf(stderr, "Error: --format must be json or yaml\n")
		return 2
	}

	in, err := loadInput(&cfg, fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Setup debug if enabled
	var opts []textgrid.Option
	debug.InitFromEnv()
	if cfg.debugMode || cfg.debugFile != "" || debug.Enabled() {
		debug.SetEnabled(true)

		var output io.Writer = stderr
		if cfg.debugFile != "" {
			file, err := os.Create(cfg.debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if cfg.debugPretty || debug.PrettyFromEnv() {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}
		if session := debug.NewSession(sink); session != nil {
			defer session.Close()
			opts = append(opts, textgrid.WithDebug(session))
		}
	}

	resp := in.generate(opts...)

	if err := writeResponse(resp, outFormat, cfg.out, stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing response: %v\n", err)
		return 1
	}
	if !resp.Success {
		return 1
	}

	if cfg.svgOut != "" {
		if err := os.WriteFile(cfg.svgOut, []byte(resp.SVG), 0o644); err != nil {
			fmt.Fprintf(stderr, "Error writing SVG: %v\n", err)
			return 1
		}
	}
	if cfg.metaOut != "" {
		if err := writeMetadata(resp, cfg.scale, cfg.metaOut); err != nil {
			fmt.Fprintf(stderr, "Error writing metadata: %v\n", err)
			return 1
		}
	}
	return 0
}

// input is either a raw request body from --in or a request built from the
// positional text and the quick-mode flags.
type input struct {
	body   []byte
	format textgrid.Format
	req    *textgrid.TextGridSpec
}

// generate runs the pipeline. Raw bodies go through GenerateBytes so a body
// that cannot be decoded still yields a validation response.
func (in input) generate(opts ...textgrid.Option) *textgrid.Response {
	if in.req != nil {
		return textgrid.Generate(in.req, opts...)
	}
	return textgrid.GenerateBytes(in.body, in.format, opts...)
}

func loadInput(cfg *config, args []string, stdin io.Reader) (input, error) {
	if cfg.in != "" {
		if len(args) > 0 {
			return input{}, fmt.Errorf("--in cannot be combined with text arguments")
		}
		var (
			data []byte
			err  error
		)
		if cfg.in == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(cfg.in)
		}
		if err != nil {
			return input{}, fmt.Errorf("reading request: %w", err)
		}
		return input{body: data, format: formatFromPath(cfg.in)}, nil
	}

	if len(args) == 0 {
		return input{}, fmt.Errorf("no text or --in request provided")
	}

	req := &textgrid.TextGridSpec{
		Type: textgrid.RequestType,
		ID:   "cli",
		Text: strings.Join(args, " "),
		Grid: textgrid.GridSpec{
			CellW:    cfg.cell,
			CellH:    cfg.cell,
			Cols:     cfg.cols,
			Rows:     cfg.rows,
			MaxLines: cfg.rows,
			Align:    textgrid.Align(cfg.align),
		},
		Wrap: textgrid.WrapConfig{
			Mode:     textgrid.WrapWord,
			Overflow: textgrid.Overflow(cfg.overflow),
		},
		Font:   textgrid.FontSpec{Family: cfg.family},
		Style:  textgrid.StyleSpec{Prompt: cfg.prompt},
		Output: textgrid.OutputSpec{SVG: true},
	}
	textgrid.ApplyDefaults(req)
	return input{req: req}, nil
}

func formatFromPath(p string) textgrid.Format {
	switch {
	case strings.HasSuffix(p, ".json"):
		return textgrid.FormatJSON
	case strings.HasSuffix(p, ".yaml"), strings.HasSuffix(p, ".yml"):
		return textgrid.FormatYAML
	}
	return textgrid.FormatAuto
}

func writeResponse(resp *textgrid.Response, format textgrid.Format, path string, stdout io.Writer) error {
	var (
		data []byte
		err  error
	)
	if format == textgrid.FormatYAML {
		data, err = yaml.Marshal(resp)
	} else {
		data, err = json.MarshalIndent(resp, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeMetadata(resp *textgrid.Response, scale int, path string) error {
	if scale < 1 || scale > 4 {
		return fmt.Errorf("--scale must be between 1 and 4, got %d", scale)
	}
	meta, err := textgrid.BuildAtlasMetadata(resp.LayoutDoc, resp.Dimensions.Width*scale, resp.Dimensions.Height*scale)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func listFonts(w io.Writer) {
	for _, e := range textgrid.FontEntries() {
		weights := make([]string, len(e.Weights))
		for i, wt := range e.Weights {
			weights[i] = fmt.Sprint(wt)
		}
		fmt.Fprintf(w, "%-20s %-11s weights=%s styles=%s\n",
			e.Family, e.Category, strings.Join(weights, ","), strings.Join(e.Styles, ","))
	}
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "textgrid - sprite grid text layout and silhouette renderer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  textgrid [flags] <text>")
	fmt.Fprintln(w, "  textgrid [flags] --in request.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEXTGRID_DEBUG=1         enable debug tracing")
	fmt.Fprintln(w, "  TEXTGRID_DEBUG_PRETTY=1  use the pretty debug format")
}
