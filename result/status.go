package result

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Status represents the classification of a probe outcome.
type Status string

const (
	StatusOK              Status = "ok"
	StatusRedirect        Status = "redirect"
	StatusBlocked         Status = "blocked"
	StatusClientError     Status = "client_error"
	StatusServerError     Status = "server_error"
	StatusTimeout         Status = "timeout"
	StatusConnectionError Status = "connection_error"
	StatusError           Status = "error"
	StatusUnknownStatus   Status = "unknown_status"
)

// Severity groups statuses for the run summary and the exit code.
type Severity int

const (
	// SeverityOK marks a link confirmed to work.
	SeverityOK Severity = iota
	// SeverityWarning marks a link that is likely fine but could not be confirmed.
	SeverityWarning
	// SeverityError marks a link that is likely broken.
	SeverityError
)

// Severity returns how s counts toward the run summary.
func (s Status) Severity() Severity {
	switch s {
	case StatusOK:
		return SeverityOK
	case StatusRedirect, StatusBlocked:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Messages attached to failure outcomes.
const (
	MessageConnectionFailed = "Connection failed"
	unexpectedPrefix        = "Unexpected error: "
)

// ClassifyStatusCode maps the HTTP status code of the final response to a
// Status. Host specific overrides such as 403 blocking are applied by the caller.
func ClassifyStatusCode(code int) Status {
	switch {
	case code == 200:
		return StatusOK
	case code >= 300 && code <= 399:
		return StatusRedirect
	case code >= 400 && code <= 499:
		return StatusClientError
	case code >= 500 && code <= 599:
		return StatusServerError
	default:
		return StatusUnknownStatus
	}
}

// ClassifyError maps a transport failure to a Status and a human-readable
// message. Every non-nil error maps to exactly one of timeout,
// connection_error or error.
func ClassifyError(err error, timeout time.Duration) (Status, string) {
	if err == nil {
		return StatusError, unexpectedPrefix + "nil error"
	}

	// Check timeout first: client timeouts also surface as net.OpError
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout, TimeoutMessage(timeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout, TimeoutMessage(timeout)
	}

	if isConnectionError(err) {
		return StatusConnectionError, MessageConnectionFailed
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return StatusError, err.Error()
	}

	return StatusError, UnexpectedMessage(err)
}

// TimeoutMessage returns the message recorded for a timed out request.
func TimeoutMessage(timeout time.Duration) string {
	return "Timeout after " + strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64) + "s"
}

// UnexpectedMessage returns the message recorded for failures outside the
// transport layer.
func UnexpectedMessage(err error) string {
	return unexpectedPrefix + err.Error()
}

// isConnectionError reports whether err means no usable connection could be
// established: DNS failures, refused or reset dials, and TLS failures.
func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var (
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
