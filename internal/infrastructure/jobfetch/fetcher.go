package jobfetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

var (
	ErrInvalidURL = errors.New("invalid job url")
	ErrNoContent  = errors.New("job page has no readable content")
)

// minStaticText is the shortest static body accepted before the headless
// browser is tried.
const minStaticText = 200

type Posting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rendered    bool   `json:"rendered"`
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Posting, error)
}

type Options struct {
	Timeout  time.Duration
	Headless bool
	// AllowPrivate permits loopback, private and link-local targets.
	AllowPrivate bool
	Logger       *log.Logger
}

// PageFetcher loads job postings with colly and, when enabled, falls back to
// a headless Chrome render for script-driven pages.
type PageFetcher struct {
	timeout      time.Duration
	headless     bool
	allowPrivate bool
	logger       *log.Logger

	render   func(ctx context.Context, pageURL string) (Posting, error)
	lookupIP func(ctx context.Context, host string) ([]net.IP, error)
}

func NewPageFetcher(opts Options) *PageFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	f := &PageFetcher{
		timeout:      opts.Timeout,
		headless:     opts.Headless,
		allowPrivate: opts.AllowPrivate,
		logger:       opts.Logger,
		lookupIP:     lookupIP,
	}
	f.render = f.fetchHeadless
	return f
}

func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	u, err := parseJobURL(rawURL)
	if err != nil {
		return Posting{}, err
	}
	if err := f.checkHost(ctx, u.Hostname()); err != nil {
		f.logger.Printf("[JobFetch] host rejected | url=%s err=%v", u.String(), err)
		return Posting{}, err
	}

	p, staticErr := f.fetchStatic(ctx, u)
	if staticErr == nil && len(p.Description) >= minStaticText {
		return p, nil
	}
	if !f.headless {
		if staticErr != nil {
			return Posting{}, staticErr
		}
		if p.Description == "" {
			return Posting{}, ErrNoContent
		}
		return p, nil
	}

	f.logger.Printf("[JobFetch] static fetch insufficient, rendering | url=%s chars=%d err=%v", u.String(), len(p.Description), staticErr)
	rendered, err := f.render(ctx, u.String())
	if err != nil {
		if staticErr == nil && p.Description != "" {
			return p, nil
		}
		return Posting{}, err
	}
	if rendered.Description == "" {
		return Posting{}, ErrNoContent
	}
	return rendered, nil
}

func parseJobURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "SkillSiftFetcher/0.1",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func (f *PageFetcher) fetchStatic(ctx context.Context, u *url.URL) (Posting, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
	)
	c.SetRequestTimeout(f.timeout)
	if !f.allowPrivate {
		c.WithTransport(guardedTransport(f.timeout))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 200 * time.Millisecond})

	out := Posting{URL: u.String()}
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if h := strings.TrimSpace(e.Text); h != "" {
			out.Title = h
		}
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script, style, noscript, nav, footer").Remove()
		out.Description = collapseText(e.DOM.Text())
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return Posting{}, ctx.Err()
	}
	if err := c.Visit(u.String()); err != nil {
		return Posting{}, err
	}
	c.Wait()

	if ctx.Err() != nil {
		return Posting{}, ctx.Err()
	}
	if reqErr != nil {
		return Posting{}, reqErr
	}
	return out, nil
}

func collapseText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
