package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/render"
	"github.com/wippyai/pickle/unpickler"
	"github.com/wippyai/pickle/wire"
)

// bufferList collects repeated -buffer flags.
type bufferList []string

func (b *bufferList) String() string {
	return strings.Join(*b, ",")
}

func (b *bufferList) Set(v string) error {
	*b = append(*b, v)
	return nil
}

func main() {
	var (
		input       = flag.String("f", "-", "Pickle file to decode (- for stdin)")
		format      = flag.String("format", formatText, "Output format: text, yaml, cbor, dis")
		configPath  = flag.String("config", "", "TOML config file")
		color       = flag.String("color", colorAuto, "Color output: auto, always, never")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
		buffers     bufferList
	)
	flag.Var(&buffers, "buffer", "Out-of-band buffer file consumed by NEXT_BUFFER (repeatable)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: unpickle [-f file.pkl] [-format text|yaml|cbor|dis] [-buffer file ...]")
		fmt.Fprintln(os.Stderr, "       unpickle -f file.pkl -i  (interactive mode)")
		flag.PrintDefaults()
	}
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := runMain(*input, *configPath, set, *format, *color, buffers, *interactive, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMain(input, configPath string, set map[string]bool, format, color string, bufferPaths []string, interactive, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		log = l
		defer func() { _ = log.Sync() }()
	}
	unpickler.SetLogger(log)

	cfg := defaultConfig()
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		log.Debug("config loaded", zap.String("path", configPath))
	}
	if err := cfg.applyFlags(set, format, color); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	bufs, err := readBuffers(bufferPaths)
	if err != nil {
		return err
	}
	log.Debug("input read",
		zap.String("path", input),
		zap.Int("bytes", len(data)),
		zap.Int("buffers", len(bufs)))

	if interactive {
		return runInteractive(input, data, cfg.options(bufs))
	}
	return run(os.Stdout, data, cfg, bufs, outputStyle(cfg, os.Stdout))
}

// run decodes or disassembles data and writes it in the configured format.
func run(w io.Writer, data []byte, cfg config, bufs [][]byte, st render.Style) error {
	if cfg.Format == formatDis {
		instrs, err := wire.Disassemble(data)
		fmt.Fprint(w, render.Disassembly(instrs, st))
		return err
	}

	v, err := unpickler.New(cfg.options(bufs)).Loads(data)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case formatYAML:
		out, err := render.YAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case formatCBOR:
		out, err := render.CBOR(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	_, err = fmt.Fprintln(w, render.Text(v, st))
	return err
}

func outputStyle(cfg config, out *os.File) render.Style {
	if !cfg.colorEnabled(out) {
		return render.PlainStyle()
	}
	r := lipgloss.NewRenderer(out)
	if cfg.Color == colorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}
	return render.NewStyle(r)
}

func readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return data, nil
}

func readBuffers(paths []string) ([][]byte, error) {
	bufs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Load("read buffer "+p, err)
		}
		bufs = append(bufs, data)
	}
	return bufs, nil
}
