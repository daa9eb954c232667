// Package main provides the linkcheck CLI entrypoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkcheck/checker"
	"github.com/lukemcguire/linkcheck/result"
	"github.com/lukemcguire/linkcheck/tui"
)

// options holds the parsed command-line flags.
type options struct {
	readme         string
	timeout        float64
	delay          float64
	report         bool
	output         string
	quiet          bool
	format         string
	userAgent      string
	blockedHosts   string
	forbiddenHosts string
	respectRobots  bool
	concurrency    int
	tui            bool
	debug          bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	defaults := checker.DefaultConfig()

	var opts options
	flags := flag.NewFlagSet("linkcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.readme, "readme", "README.md", "path to the markdown document to check")
	flags.Float64Var(&opts.timeout, "timeout", defaults.Timeout.Seconds(), "request timeout in seconds")
	flags.Float64Var(&opts.delay, "delay", defaults.Delay.Seconds(), "delay between requests in seconds")
	flags.BoolVar(&opts.report, "report", false, "generate a report file")
	flags.StringVar(&opts.output, "output", "", "report file path (implies -report)")
	flags.BoolVar(&opts.quiet, "quiet", false, "only show the summary")
	flags.StringVar(&opts.format, "format", string(result.FormatMarkdown), "report format: markdown, json or csv")
	flags.StringVar(&opts.userAgent, "user-agent", checker.DefaultUserAgent, "user agent string")
	flags.StringVar(&opts.blockedHosts, "blocked-hosts", defaults.BlockedHosts.String(), "comma-separated hosts reported as blocked without a request")
	flags.StringVar(&opts.forbiddenHosts, "forbidden-hosts", defaults.ForbiddenHosts.String(), "comma-separated hosts whose 403 responses count as blocked")
	flags.BoolVar(&opts.respectRobots, "respect-robots", false, "report links disallowed by robots.txt as blocked")
	flags.IntVar(&opts.concurrency, "concurrency", defaults.Concurrency, "number of concurrent workers")
	flags.BoolVar(&opts.tui, "tui", false, "show an interactive progress view")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	if err := flags.Parse(args); err != nil {
		return options{}, fmt.Errorf("parse flags: %w", err)
	}
	if opts.timeout <= 0 {
		return options{}, fmt.Errorf("invalid -timeout %v: must be positive", opts.timeout)
	}
	if opts.delay < 0 {
		return options{}, fmt.Errorf("invalid -delay %v: must not be negative", opts.delay)
	}
	if opts.concurrency < 1 {
		return options{}, fmt.Errorf("invalid -concurrency %d: must be at least 1", opts.concurrency)
	}
	return opts, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	format, err := result.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newLogger(stderr, opts.debug)
	printer := result.NewPrinter(stdout)

	if !opts.quiet {
		printer.Header("🔗 Markdown Link Checker")
	}

	if _, err := os.Stat(opts.readme); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			printer.Error(fmt.Sprintf("❌ Error: %s not found", opts.readme))
		} else {
			printer.Error(fmt.Sprintf("❌ Error: %v", err))
		}
		return 1
	}

	printer.Step(fmt.Sprintf("🔍 Extracting links from %s...", opts.readme))
	links, err := checker.ExtractFile(opts.readme)
	if err != nil {
		logger.WithError(err).WithField("path", opts.readme).Error("extract links")
		printer.Error(fmt.Sprintf("❌ Error: %v", err))
		return 1
	}
	if len(links) == 0 {
		printer.Error(fmt.Sprintf("❌ No links found in %s", opts.readme))
		return 0
	}
	printer.Info(fmt.Sprintf("📋 Found %d links to check", len(links)))

	cfg := checker.Config{
		Timeout:        seconds(opts.timeout),
		Delay:          seconds(opts.delay),
		UserAgent:      opts.userAgent,
		BlockedHosts:   checker.ParseHostList(opts.blockedHosts),
		ForbiddenHosts: checker.ParseHostList(opts.forbiddenHosts),
		RespectRobots:  opts.respectRobots,
		Concurrency:    opts.concurrency,
		Logger:         logger,
	}

	var res *result.Result
	switch {
	case opts.tui:
		res, err = runTUI(cfg, links)
	case opts.quiet:
		res, err = checker.New(cfg, nil).Run(context.Background(), links)
	default:
		printer.Step("🔗 Checking links...")
		res, err = runVerbose(cfg, links, printer)
	}
	if err != nil {
		logger.WithError(err).Error("link check aborted")
		printer.Error(fmt.Sprintf("❌ Error: %v", err))
		return 1
	}

	if !opts.quiet && !opts.tui {
		printer.Summary(res.Summary)
	}

	if opts.report || opts.output != "" {
		path := opts.output
		if path == "" {
			path = result.DefaultReportPath(time.Now(), format)
		}
		if err := result.SaveReport(res, path, format); err != nil {
			logger.WithError(err).WithField("path", path).Error("save report")
			printer.Error(fmt.Sprintf("❌ Error: %v", err))
			return 1
		}
		printer.Info(fmt.Sprintf("📄 Report saved to: %s", path))
		if !opts.quiet {
			if res.HasErrors() {
				printer.Warning(fmt.Sprintf("📄 Detailed report with broken links saved to: %s", path))
			} else {
				printer.Info(fmt.Sprintf("📄 Report saved to: %s", path))
			}
		}
	}

	if res.HasErrors() {
		return 1
	}
	return 0
}

// runVerbose runs the checker while printing one progress and one status
// line per link.
func runVerbose(cfg checker.Config, links []checker.LinkReference, printer *result.Printer) (*result.Result, error) {
	progressCh := make(chan checker.CheckEvent, 100)
	done := make(chan struct{})
	sequential := cfg.Concurrency <= 1

	go func() {
		defer close(done)
		for evt := range progressCh {
			switch evt.Kind {
			case checker.EventChecking:
				if sequential {
					printer.Progress(evt.Index, evt.Total, evt.Link.URL)
				}
			case checker.EventChecked:
				if !sequential {
					printer.Progress(evt.Index, evt.Total, evt.Link.URL)
				}
				printer.LinkStatus(*evt.Result)
			}
		}
	}()

	res, err := checker.New(cfg, progressCh).Run(context.Background(), links)
	close(progressCh)
	<-done
	return res, err
}

// runTUI runs the checker behind the Bubble Tea progress view.
func runTUI(cfg checker.Config, links []checker.LinkReference) (*result.Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progressCh := make(chan checker.CheckEvent, 100)
	model := tui.NewModel(ctx, cancel, checker.New(cfg, progressCh), links, progressCh)

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("run tui: %w", err)
	}

	final := finalModel.(tui.Model)
	if final.Err() != nil {
		return nil, final.Err()
	}
	if final.GetResult() == nil {
		return nil, errors.New("link check interrupted")
	}
	return final.GetResult(), nil
}
