package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkcheck/result"
	"github.com/lukemcguire/linkcheck/urlutil"
)

// maxBodyBytes bounds how much of a response body is downloaded.
const maxBodyBytes = 10 * 1024 * 1024

// Messages recorded for blocked links.
const (
	MessageDomainBlocked    = "Domain blocks automated requests - likely working for humans"
	MessageForbiddenBlocked = "Host blocks automated requests (HTTP 403) - likely working for humans"
	MessageRobotsBlocked    = "Disallowed by robots.txt - likely working for humans"
)

// Prober checks the reachability of single URLs.
// It never returns an error: every failure is captured in the ProbeResult.
type Prober struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	blockedHosts   HostList
	forbiddenHosts HostList
	robots         *RobotsPolicy // nil when robots.txt is not consulted
	log            *logrus.Entry
}

// NewProber creates a Prober from cfg. The HTTP client is shared by every
// probe of the run.
func NewProber(cfg Config) *Prober {
	cfg = cfg.withDefaults()

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	}

	prober := &Prober{
		client:         client,
		timeout:        cfg.Timeout,
		userAgent:      cfg.UserAgent,
		blockedHosts:   cfg.BlockedHosts,
		forbiddenHosts: cfg.ForbiddenHosts,
		log:            cfg.Logger.WithField("component", "prober"),
	}
	if cfg.RespectRobots {
		prober.robots = NewRobotsPolicy(client)
	}
	return prober
}

// Probe issues a single GET to rawURL, following redirects, and classifies
// the outcome. Hosts on the denylist are reported as blocked without any
// network call.
func (p *Prober) Probe(ctx context.Context, rawURL string) (res result.ProbeResult) {
	res.URL = rawURL

	defer func() {
		if r := recover(); r != nil {
			res = result.ProbeResult{
				URL:    rawURL,
				Status: result.StatusError,
				Error:  result.UnexpectedMessage(fmt.Errorf("%v", r)),
			}
		}
	}()

	host := urlutil.Hostname(rawURL)
	if p.blockedHosts.Matches(host) {
		res.Status = result.StatusBlocked
		res.Error = MessageDomainBlocked
		return res
	}

	if p.robots != nil {
		allowed, err := p.robots.Allowed(ctx, rawURL, p.userAgent)
		if err != nil {
			p.log.WithError(err).WithField("url", rawURL).Debug("robots.txt unavailable, allowing probe")
		}
		if !allowed {
			res.Status = result.StatusBlocked
			res.Error = MessageRobotsBlocked
			return res
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		res.Status, res.Error = result.ClassifyError(err, p.timeout)
		return res
	}
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		res.Status, res.Error = result.ClassifyError(err, p.timeout)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	// Download the body so the elapsed time covers the whole response
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		res.Status, res.Error = result.ClassifyError(&url.Error{Op: "Get", URL: rawURL, Err: err}, p.timeout)
		return res
	}
	elapsed := time.Since(start)

	res.StatusCode = resp.StatusCode
	res.ResponseTime = result.Seconds(elapsed)
	res.Status = result.ClassifyStatusCode(resp.StatusCode)

	switch {
	case res.Status == result.StatusRedirect:
		res.RedirectURL = resp.Request.URL.String()
	case resp.StatusCode == http.StatusForbidden && p.forbiddenHosts.Matches(host):
		res.Status = result.StatusBlocked
		res.Error = MessageForbiddenBlocked
	}

	return res
}
