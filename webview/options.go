package webview

import (
	"log/slog"

	"github.com/go-rod/rod"
)

type Option func(*options)

type options struct {
	browser  *rod.Browser
	headless bool
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{headless: true}
}

// WithBrowser attaches an already-connected browser instead of launching one.
// The Surface will not close a browser it did not launch.
func WithBrowser(b *rod.Browser) Option {
	return func(o *options) { o.browser = b }
}

// WithHeadless controls whether a launched browser runs headless.
func WithHeadless(headless bool) Option {
	return func(o *options) { o.headless = headless }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
