// Package checker extracts links from a markdown document and verifies that
// each one is reachable. Links are probed one at a time with a fixed pause
// between requests; an optional worker pool trades that courtesy for speed.
package checker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lukemcguire/linkcheck/result"
)

// DefaultUserAgent identifies the checker to the sites it probes.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Awesome-AI-Link-Checker/1.0; +https://github.com/josedacosta/awesome-ai-driven-development)"

// Config holds checker configuration.
type Config struct {
	Timeout        time.Duration     // Per-request timeout (default 10s)
	Delay          time.Duration     // Pause after each probe; zero disables it
	UserAgent      string            // Identifying User-Agent header
	BlockedHosts   HostList          // Hosts reported as blocked without a request
	ForbiddenHosts HostList          // Hosts whose 403 responses are reported as blocked
	RespectRobots  bool              // Report links disallowed by robots.txt as blocked
	Concurrency    int               // Number of workers; 1 keeps the run sequential
	Transport      http.RoundTripper // Optional transport, http.DefaultTransport when nil
	Logger         *logrus.Logger    // Diagnostics logger, logrus.StandardLogger when nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		Delay:          500 * time.Millisecond,
		UserAgent:      DefaultUserAgent,
		BlockedHosts:   HostList{"openai.com", "anthropic.com"},
		ForbiddenHosts: HostList{"openai.com"},
		Concurrency:    1,
	}
}

// withDefaults fills in zero values that have no meaningful zero setting.
func (cfg Config) withDefaults() Config {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return cfg
}

// Checker drives the prober over every extracted link.
type Checker struct {
	cfg        Config
	prober     *Prober
	log        *logrus.Entry
	progressCh chan<- CheckEvent
}

// New creates a Checker with the given configuration.
// The progressCh parameter is optional; pass nil to disable progress events.
func New(cfg Config, progressCh chan<- CheckEvent) *Checker {
	cfg = cfg.withDefaults()
	return &Checker{
		cfg:        cfg,
		prober:     NewProber(cfg),
		log:        cfg.Logger.WithField("component", "checker"),
		progressCh: progressCh,
	}
}

// Run probes every link in order and returns the merged results with the
// run summary. An empty link list returns a zero summary without touching
// the network. Run only fails when ctx is cancelled.
func (c *Checker) Run(ctx context.Context, links []LinkReference) (*result.Result, error) {
	start := time.Now()

	res := &result.Result{
		Results: make([]result.LinkResult, 0, len(links)),
		Summary: result.Summary{
			RunID:     uuid.NewString(),
			Total:     len(links),
			CheckedAt: start,
		},
	}
	log := c.log.WithField("run_id", res.Summary.RunID)

	if len(links) == 0 {
		log.Debug("no links to check")
		res.Duration = time.Since(start)
		return res, nil
	}

	log.WithFields(logrus.Fields{
		"links":       len(links),
		"concurrency": c.cfg.Concurrency,
		"delay":       c.cfg.Delay,
	}).Info("starting link check")

	var err error
	if c.cfg.Concurrency > 1 {
		err = c.runConcurrent(ctx, log, links, res)
	} else {
		err = c.runSequential(ctx, log, links, res)
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"ok":       res.Summary.OK,
		"warnings": res.Summary.Warnings,
		"errors":   res.Summary.Errors,
		"duration": res.Duration,
	}).Info("link check finished")

	return res, nil
}

// runSequential probes links strictly one after another, pausing after each.
func (c *Checker) runSequential(ctx context.Context, log *logrus.Entry, links []LinkReference, res *result.Result) error {
	total := len(links)
	for i, link := range links {
		c.emit(CheckEvent{Kind: EventChecking, Index: i + 1, Total: total, Link: link})

		linkResult := c.check(ctx, log, link)
		res.Results = append(res.Results, linkResult)
		res.Summary.Add(linkResult.Status)

		c.emit(CheckEvent{
			Kind:    EventChecked,
			Index:   i + 1,
			Total:   total,
			Link:    link,
			Result:  &linkResult,
			Checked: i + 1,
			Broken:  res.Summary.Errors,
		})

		if err := pause(ctx, c.cfg.Delay); err != nil {
			return fmt.Errorf("check %s: %w", link.URL, err)
		}
	}
	return nil
}

// runConcurrent probes links with a pool of workers sharing one rate
// limiter. Results keep document order.
func (c *Checker) runConcurrent(ctx context.Context, log *logrus.Entry, links []LinkReference, res *result.Result) error {
	total := len(links)
	limiter := newLimiter(c.cfg.Delay)
	results := make([]result.LinkResult, total)
	jobs := make(chan int)

	var (
		mu      sync.Mutex
		checked int
	)

	errGroup, groupCtx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		defer close(jobs)
		for i := range links {
			select {
			case jobs <- i:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})

	for range c.cfg.Concurrency {
		errGroup.Go(func() error {
			for i := range jobs {
				if err := limiter.Wait(groupCtx); err != nil {
					return fmt.Errorf("rate limiter wait: %w", err)
				}
				link := links[i]

				c.emit(CheckEvent{Kind: EventChecking, Index: i + 1, Total: total, Link: link})
				linkResult := c.check(groupCtx, log, link)
				results[i] = linkResult

				mu.Lock()
				res.Summary.Add(linkResult.Status)
				checked++
				evt := CheckEvent{
					Kind:    EventChecked,
					Index:   i + 1,
					Total:   total,
					Link:    link,
					Result:  &linkResult,
					Checked: checked,
					Broken:  res.Summary.Errors,
				}
				mu.Unlock()
				c.emit(evt)
			}
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return fmt.Errorf("wait for workers: %w", err)
	}

	res.Results = append(res.Results, results...)
	return nil
}

// check probes one link and merges the outcome with its origin.
func (c *Checker) check(ctx context.Context, log *logrus.Entry, link LinkReference) result.LinkResult {
	probe := c.prober.Probe(ctx, link.URL)

	entry := log.WithFields(logrus.Fields{
		"url":    link.URL,
		"line":   link.LineNumber,
		"status": probe.Status,
	})
	if probe.ResponseTime != nil {
		entry = entry.WithField("elapsed", *probe.ResponseTime)
	}
	if probe.Status.Severity() == result.SeverityError {
		entry.WithField("error", probe.Error).Debug("link failed")
	} else {
		entry.Debug("link checked")
	}

	return result.LinkResult{
		Text:        link.Text,
		LineNumber:  link.LineNumber,
		ProbeResult: probe,
	}
}

func (c *Checker) emit(evt CheckEvent) {
	if c.progressCh != nil {
		c.progressCh <- evt
	}
}
