package obs

// Options controls observability bootstrap.
type Options struct {
	ServiceName    string
	ServiceVersion string

	// StdoutTrace exports spans to stdout; useful for local debugging.
	// Production OTLP wiring belongs to the host application.
	StdoutTrace bool

	DisableMetrics bool
	SampleRatio    float64
}
