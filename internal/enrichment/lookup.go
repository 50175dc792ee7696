package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Lookup resolves company facts from the homepage behind an email domain.
// It is safe for concurrent use. Each domain gets its own rate limiter;
// the least recently used limiters are evicted once MaxTrackedDomains is
// reached.
type Lookup struct {
	cfg      Config
	client   *http.Client
	freeMail map[string]struct{}
	logger   *slog.Logger
	limiters *lru.Cache[string, *rate.Limiter]
}

// New creates a Lookup from a finalized config.
func New(cfg *Config, logger *slog.Logger) (*Lookup, error) {
	freeMail := make(map[string]struct{}, len(cfg.FreeMailDomains))
	for _, d := range cfg.FreeMailDomains {
		freeMail[strings.ToLower(d)] = struct{}{}
	}

	limiters, err := lru.New[string, *rate.Limiter](cfg.MaxTrackedDomains)
	if err != nil {
		return nil, fmt.Errorf("limiter cache: %w", err)
	}

	return &Lookup{
		cfg:      *cfg,
		client:   newClient(cfg),
		freeMail: freeMail,
		logger:   logger.With("system", "enrichment"),
		limiters: limiters,
	}, nil
}

// Domain extracts the lower-cased domain from an email address.
// Returns an empty string when the address has no domain part.
func Domain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

// Lookup fetches the homepage for domain and extracts company facts.
// Every unsuccessful outcome is returned as a *Failure. Domains that are
// not public DNS names, or that resolve to non-public addresses, fail as
// NotFound without contacting the host.
func (l *Lookup) Lookup(ctx context.Context, domain string) (*Facts, error) {
	raw := domain
	domain, err := normalizeDomain(domain)
	if err != nil {
		return nil, fail(NotFound, raw, err)
	}

	if _, ok := l.freeMail[domain]; ok {
		return nil, fail(NotFound, domain, ErrPersonalDomain)
	}

	if !l.limiter(domain).Allow() {
		return nil, fail(RateLimited, domain, errors.New("local rate limit exceeded"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL(domain), nil)
	if err != nil {
		return nil, fail(NotFound, domain, fmt.Errorf("%w: %w", ErrInvalidDomain, err))
	}
	req.Header.Set("User-Agent", l.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrBlockedAddress) {
			l.logger.WarnContext(ctx, "enrichment blocked non-public address", "domain", domain)
			return nil, fail(NotFound, domain, err)
		}
		return nil, fail(Unreachable, domain, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		err.Domain = domain
		return nil, err
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTML(ct) {
		return nil, fail(ParseError, domain, fmt.Errorf("unexpected content type %q", ct))
	}

	facts, err := parse(io.LimitReader(resp.Body, l.cfg.MaxBodySizeBytes()))
	if err != nil {
		return nil, fail(ParseError, domain, err)
	}
	facts.Domain = domain

	l.logger.DebugContext(ctx, "enrichment lookup complete", "domain", domain, "company", facts.Company)

	return facts, nil
}

func (l *Lookup) limiter(domain string) *rate.Limiter {
	if lim, ok := l.limiters.Get(domain); ok {
		return lim
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst)
	if prev, ok, _ := l.limiters.PeekOrAdd(domain, lim); ok {
		return prev
	}
	return lim
}

func classifyStatus(code int) *Failure {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return &Failure{Kind: NotFound, Err: fmt.Errorf("status %d", code)}
	case code == http.StatusTooManyRequests:
		return &Failure{Kind: RateLimited, Err: fmt.Errorf("status %d", code)}
	default:
		return &Failure{Kind: Unreachable, Err: fmt.Errorf("status %d", code)}
	}
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
