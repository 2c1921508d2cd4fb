// Package webview implements core.Surface on a Chromium instance driven over
// CDP. It serves two jobs: a one-shot probe that harvests the user agent and
// high-entropy client hints, and presentation of offerwall/surveywall URLs
// with optional placeholder HTML and click reporting.
package webview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/ayetstudios/sdk-go/core"
)

const probeJS = `async () => {
	let ch = {};
	try {
		if (navigator.userAgentData && navigator.userAgentData.getHighEntropyValues) {
			ch = await navigator.userAgentData.getHighEntropyValues([
				'architecture','bitness','brands','mobile','model','platform',
				'platformVersion','uaFullVersion','fullVersionList','wow64'
			]);
		}
	} catch (e) {}
	return JSON.stringify({ua: navigator.userAgent, ch: ch, isPartitioned: true});
}`

const clickListenerJS = `() => {
	document.addEventListener('click', () => {
		if (window.ayetRecordClick) { window.ayetRecordClick('click'); }
	}, {capture: true});
}`

// Surface drives the embedded browser.
type Surface struct {
	mu       sync.Mutex
	opts     options
	browser  *rod.Browser
	launched *launcher.Launcher
	page     *rod.Page
	log      *slog.Logger
}

// New constructs a Surface. The browser is not launched until first use.
func New(opts ...Option) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{opts: o, browser: o.browser, log: logger.With("component", "webview")}
}

// connect lazily launches or attaches the browser. Caller holds s.mu.
func (s *Surface) connect() error {
	if s.browser != nil {
		return nil
	}
	l := launcher.New().Headless(s.opts.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect browser: %w", err)
	}
	s.launched = l
	s.browser = browser
	return nil
}

type probePayload struct {
	UA            string         `json:"ua"`
	CH            map[string]any `json:"ch"`
	IsPartitioned bool           `json:"isPartitioned"`
}

// Probe reports the browser's user agent, client hints, and partitioning
// mode. On any failure it returns a conservative partial result (partitioned
// assumed on) together with the error, so callers can proceed degraded.
func (s *Surface) Probe(ctx context.Context, baseURL string) (core.ProbeResult, error) {
	partial := core.ProbeResult{Partitioned: true}

	s.mu.Lock()
	if err := s.connect(); err != nil {
		s.mu.Unlock()
		return partial, err
	}
	browser := s.browser
	s.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return partial, fmt.Errorf("open probe page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	res, err := page.Eval(probeJS)
	if err != nil {
		return partial, fmt.Errorf("probe eval: %w", err)
	}

	var payload probePayload
	if err := json.Unmarshal([]byte(res.Value.Str()), &payload); err != nil {
		return partial, fmt.Errorf("decode probe result: %w", err)
	}

	s.log.Debug("probe complete", "ua_len", len(payload.UA), "hint_keys", len(payload.CH))
	return core.ProbeResult{
		UserAgent:   payload.UA,
		ClientHints: payload.CH,
		Partitioned: payload.IsPartitioned,
	}, nil
}

// Present opens the URL in a fresh page, replacing any previous one.
func (s *Surface) Present(ctx context.Context, p core.Presentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connect(); err != nil {
		return err
	}
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	page = page.Context(ctx)

	if p.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: p.UserAgent}); err != nil {
			s.log.Error("set user agent failed", "err", err)
		}
	}

	if p.OnClick != nil {
		onClick := p.OnClick
		if _, err := page.Expose("ayetRecordClick", func(gson.JSON) (interface{}, error) {
			onClick()
			return nil, nil
		}); err != nil {
			s.log.Error("expose click binding failed", "err", err)
		}
		if _, err := page.EvalOnNewDocument(clickListenerJS); err != nil {
			s.log.Error("install click listener failed", "err", err)
		}
	}

	if p.PlaceholderHTML != "" {
		if err := page.SetDocumentContent(p.PlaceholderHTML); err != nil {
			s.log.Error("placeholder render failed", "err", err)
		}
	}

	if err := page.Navigate(p.URL); err != nil {
		_ = page.Close()
		return fmt.Errorf("navigate %s: %w", p.URL, err)
	}

	s.page = page
	s.log.Debug("presenting", "url", p.URL)
	return nil
}

// Reload reloads the currently presented page, if any.
func (s *Surface) Reload(ctx context.Context) error {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	if page == nil {
		return nil
	}
	if err := page.Context(ctx).Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.log.Debug("reloaded presented content")
	return nil
}

// Close shuts down the browser if this Surface launched it.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = nil
	if s.browser != nil && s.launched != nil {
		err := s.browser.Close()
		s.launched.Kill()
		s.browser = nil
		s.launched = nil
		return err
	}
	return nil
}
