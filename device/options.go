package device

type Option func(*options)

type options struct {
	make_         string
	model         string
	osVersion     string
	advertisingID string
	vendorID      string
	buildID       string
	screenWidth   int
	screenHeight  int
	screenDensity float64
}

func defaultOptions() options {
	return options{
		make_: "Generic",
		model: "go-host",
	}
}

// WithMakeModel overrides the reported device make and model.
func WithMakeModel(make, model string) Option {
	return func(o *options) {
		o.make_ = make
		o.model = model
	}
}

// WithOSVersion reports the host OS version string.
func WithOSVersion(v string) Option {
	return func(o *options) { o.osVersion = v }
}

// WithAdvertisingID supplies the advertising identifier when the user has
// consented to tracking. Leaving it unset reports limit_ad_tracking.
func WithAdvertisingID(id string) Option {
	return func(o *options) { o.advertisingID = id }
}

// WithVendorID pins the vendor id instead of generating a per-process one.
func WithVendorID(id string) Option {
	return func(o *options) { o.vendorID = id }
}

// WithBuildID reports the embedding application's build identifier.
func WithBuildID(id string) Option {
	return func(o *options) { o.buildID = id }
}

// WithScreen reports the physical screen geometry.
func WithScreen(width, height int, density float64) Option {
	return func(o *options) {
		o.screenWidth = width
		o.screenHeight = height
		o.screenDensity = density
	}
}
