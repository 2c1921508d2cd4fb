package core

// PlacementKind classifies what a placement is allowed to present.
type PlacementKind string

const (
	KindOfferwall     PlacementKind = "offerwall"
	KindOfferwallAPI  PlacementKind = "offerwall_api"
	KindWebSurveywall PlacementKind = "web_surveywall"
	KindOther         PlacementKind = "other"
)

// ParsePlacementKind maps a wire type string to a PlacementKind. Unknown
// strings collapse to KindOther so that kind checks against them fail closed.
func ParsePlacementKind(s string) PlacementKind {
	switch PlacementKind(s) {
	case KindOfferwall, KindOfferwallAPI, KindWebSurveywall:
		return PlacementKind(s)
	default:
		return KindOther
	}
}

// Gender uses the backend's wire encoding.
type Gender string

const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderNonBinary Gender = "NON_BINARY"
)

// Placement is a named, typed slot the backend authorized for the session.
type Placement struct {
	ID   int
	Name string
	Kind PlacementKind
}

// Device is the server-assigned device identity for the session.
type Device struct {
	UUID             string
	LegacyIdentifier string
}

// User describes the backend's view of the current user.
type User struct {
	ID                   int64
	ExternalIdentifier   string
	PublisherID          int
	PublisherPlacementID int
	CurrencyGranted      int
}

// Placeholders holds optional HTML shown while presented content loads.
type Placeholders struct {
	Offerwall    string
	Surveywall   string
	RewardStatus string
}

// Session is the cached result of a successful initialization exchange.
// It is immutable once constructed; a new init replaces it wholesale.
type Session struct {
	UserStatus   string
	Device       Device
	User         User
	Placements   []Placement
	Placeholders Placeholders

	// Keepalive values are advisory passthrough data; nothing in the SDK
	// drives a timer from them.
	KeepaliveDuration int
	KeepaliveInterval int
}

// PlacementByID returns the placement with the given id.
func (s *Session) PlacementByID(id int) (Placement, bool) {
	for _, p := range s.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// PlacementByName returns the first placement with the given name. Names are
// not guaranteed unique; first match wins.
func (s *Session) PlacementByName(name string) (Placement, bool) {
	for _, p := range s.Placements {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}
