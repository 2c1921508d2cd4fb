package ayet

import (
	"encoding/json"
	"fmt"

	"github.com/ayetstudios/sdk-go/core"
)

// initRequest is the body of POST /rest/v1/sdk/init.
type initRequest struct {
	PlacementID        int                 `json:"placement_id"`
	ExternalIdentifier string              `json:"external_identifier"`
	IsPartitioned      bool                `json:"is_partitioned"`
	UserAgent          string              `json:"user_agent,omitempty"`
	ClientHints        map[string]any      `json:"client_hints,omitempty"`
	DeviceUUID         string              `json:"device_uuid,omitempty"`
	DeviceInfo         core.DeviceSnapshot `json:"device_info"`
	Age                *int                `json:"age,omitempty"`
	Gender             string              `json:"gender,omitempty"`
}

func encodeInitRequest(req initRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode init request: %w", err)
	}
	return body, nil
}

type wireDevice struct {
	UUID             string `json:"uuid"`
	LegacyIdentifier string `json:"legacy_identifier"`
}

type wireUser struct {
	ID                   int64  `json:"id"`
	ExternalIdentifier   string `json:"external_identifier"`
	PublisherID          int    `json:"publisher_id"`
	PublisherPlacementID int    `json:"publisher_placement_id"`
	CurrencyGranted      int    `json:"currency_granted"`
}

type wireAdslot struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type initResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`

	UserStatus        string       `json:"user_status"`
	Device            *wireDevice  `json:"device"`
	User              *wireUser    `json:"user"`
	Adslots           []wireAdslot `json:"adslots"`
	PlaceholderOw     string       `json:"placeholder_ow"`
	PlaceholderSw     string       `json:"placeholder_sw"`
	PlaceholderRs     string       `json:"placeholder_rs"`
	KeepaliveDuration int          `json:"keepaliveDuration"`
	KeepaliveInterval int          `json:"keepaliveInterval"`
}

// parseInitResponse turns a raw init response body into a Session. An
// explicit error status, malformed JSON, or missing required sub-objects all
// fail parsing; the caller keeps its previous session in every failure case.
func parseInitResponse(raw []byte) (*core.Session, error) {
	var resp initResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ProtocolError{Op: "init", Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.Status == "error" {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &ProtocolError{Op: "init", Message: msg}
	}

	if resp.Device == nil || resp.User == nil || resp.Adslots == nil {
		return nil, &ProtocolError{Op: "init", Err: fmt.Errorf("response missing device, user, or adslots")}
	}

	placements := make([]core.Placement, 0, len(resp.Adslots))
	for _, slot := range resp.Adslots {
		if slot.ID == nil {
			continue
		}
		placements = append(placements, core.Placement{
			ID:   *slot.ID,
			Name: slot.Name,
			Kind: core.ParsePlacementKind(slot.Type),
		})
	}

	return &core.Session{
		UserStatus: resp.UserStatus,
		Device: core.Device{
			UUID:             resp.Device.UUID,
			LegacyIdentifier: resp.Device.LegacyIdentifier,
		},
		User: core.User{
			ID:                   resp.User.ID,
			ExternalIdentifier:   resp.User.ExternalIdentifier,
			PublisherID:          resp.User.PublisherID,
			PublisherPlacementID: resp.User.PublisherPlacementID,
			CurrencyGranted:      resp.User.CurrencyGranted,
		},
		Placements: placements,
		Placeholders: core.Placeholders{
			Offerwall:    resp.PlaceholderOw,
			Surveywall:   resp.PlaceholderSw,
			RewardStatus: resp.PlaceholderRs,
		},
		KeepaliveDuration: resp.KeepaliveDuration,
		KeepaliveInterval: resp.KeepaliveInterval,
	}, nil
}

type feedResponse struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Offers json.RawMessage `json:"offers"`
}

// parseFeedResponse extracts the offers array from a feed response and
// returns it verbatim as a JSON string.
func parseFeedResponse(raw []byte) (string, error) {
	var resp feedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &ProtocolError{Op: "feed", Err: fmt.Errorf("decode response: %w", err)}
	}

	switch resp.Status {
	case "error":
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return "", &ProtocolError{Op: "feed", Message: msg}
	case "success":
		if resp.Offers == nil {
			return "", &ProtocolError{Op: "feed", Err: fmt.Errorf("success response without offers")}
		}
		return string(resp.Offers), nil
	default:
		return "", &ProtocolError{Op: "feed", Err: fmt.Errorf("unknown status %q", resp.Status)}
	}
}
