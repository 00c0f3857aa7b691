package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/growvec/alloc"
	"github.com/wippyai/growvec/alloc/linear"
	"github.com/wippyai/growvec/vec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		backend     = flag.String("alloc", "heap", "Allocator backend: heap, counting, mmap or linear")
		limit       = flag.String("limit", "", "Byte budget for all blocks, e.g. 64KiB (optional)")
		maxPages    = flag.Uint("pages", 256, "Maximum 64KiB pages for the linear backend")
		script      = flag.String("script", "", "Commands to run, separated by ';'")
		file        = flag.String("f", "", "Read commands from file ('-' for stdin)")
		stats       = flag.Bool("stats", false, "Print allocator accounting after the script")
		metrics     = flag.Bool("metrics", false, "Print allocator metrics in Prometheus text format after the script")
		verbose     = flag.Bool("v", false, "Log storage growth to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *script == "" && *file == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: vectrace -script 'push 1; push 2; show' [-alloc heap|counting|mmap|linear] [-limit 64KiB]")
		fmt.Fprintln(os.Stderr, "       vectrace -f script.txt")
		fmt.Fprintln(os.Stderr, "       vectrace -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		vec.SetLogger(logger.Named("vec"))
		alloc.SetLogger(logger.Named("alloc"))
		linear.SetLogger(logger.Named("linear"))
	}

	cfg := sessionConfig{alloc: *backend, maxPages: uint32(*maxPages)}
	if *limit != "" {
		n, err := humanize.ParseBytes(*limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -limit: %v\n", err)
			os.Exit(1)
		}
		cfg.limit = n
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	src := *script
	if *file != "" {
		data, err := readScript(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		src = string(data)
	}

	opts := traceOptions{
		styled:  term.IsTerminal(int(os.Stdout.Fd())),
		stats:   *stats || *backend == "counting",
		metrics: *metrics,
	}
	failures, err := run(cfg, src, os.Stdout, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failures > 0 {
		os.Exit(2)
	}
}

func readScript(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return data, nil
}

type traceOptions struct {
	styled  bool
	stats   bool
	metrics bool
}

// run replays src and writes one trace line per command. It returns the
// number of commands that failed.
func run(cfg sessionConfig, src string, w io.Writer, opts traceOptions) (int, error) {
	ctx := context.Background()

	s, err := newSession(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}

	p := printer{w: w, styled: opts.styled}
	p.title(fmt.Sprintf("vectrace alloc=%s", s.backend))

	failures := 0
	for _, cmd := range splitScript(src) {
		out, err := s.Exec(cmd)
		if err != nil {
			failures++
		}
		p.step(cmd, out, err)
	}

	if err := s.Close(); err != nil {
		failures++
		p.step("(close)", "", err)
	}
	if opts.stats {
		p.stats(s.Stats())
	}
	if opts.metrics {
		if err := writeMetrics(w, s); err != nil {
			return failures, err
		}
	}
	return failures, nil
}

// writeMetrics renders the session's allocator statistics in the Prometheus
// text exposition format.
func writeMetrics(w io.Writer, s *session) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(alloc.NewCollector(s.counting, prometheus.Labels{"backend": s.backend})); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

type printer struct {
	w      io.Writer
	styled bool
}

func (p printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p printer) title(s string) {
	fmt.Fprintln(p.w, p.render(titleStyle, s))
}

func (p printer) step(cmd, out string, err error) {
	line := p.render(cmdStyle, "> "+cmd)
	switch {
	case err != nil:
		line += " " + p.render(errorStyle, "error: "+err.Error())
	case out != "":
		line += " " + p.render(resultStyle, out)
	}
	fmt.Fprintln(p.w, line)
}

func (p printer) stats(st alloc.Stats) {
	fmt.Fprintln(p.w, p.render(helpStyle, formatStats(st)))
}

func formatStats(st alloc.Stats) string {
	return fmt.Sprintf("allocs=%d resizes=%d frees=%d failures=%d allocated=%s peak=%s live=%s",
		st.Allocs, st.Resizes, st.Frees, st.Failures,
		humanize.IBytes(st.TotalBytes),
		humanize.IBytes(uint64(st.PeakBytes)),
		humanize.IBytes(uint64(st.LiveBytes)))
}
