package ayet

import (
	"errors"
	"strings"
	"testing"

	"github.com/ayetstudios/sdk-go/core"
)

func TestParseInitResponseSuccess(t *testing.T) {
	sess, err := parseInitResponse([]byte(sessionBody("dev-uuid-9")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if sess.UserStatus != "active" {
		t.Errorf("user status = %q", sess.UserStatus)
	}
	if sess.Device.UUID != "dev-uuid-9" || sess.Device.LegacyIdentifier != "legacy-1" {
		t.Errorf("device = %+v", sess.Device)
	}
	if sess.User.ID != 101 || sess.User.PublisherPlacementID != 42 {
		t.Errorf("user = %+v", sess.User)
	}
	if len(sess.Placements) != 3 {
		t.Fatalf("placements = %d", len(sess.Placements))
	}
	if sess.Placements[1].Kind != core.KindWebSurveywall {
		t.Errorf("placement kind = %s", sess.Placements[1].Kind)
	}
	if sess.Placeholders.Offerwall != "<p>loading</p>" {
		t.Errorf("placeholder = %q", sess.Placeholders.Offerwall)
	}
	if sess.KeepaliveDuration != 300 || sess.KeepaliveInterval != 60 {
		t.Errorf("keepalive = %d/%d", sess.KeepaliveDuration, sess.KeepaliveInterval)
	}
}

func TestParseInitResponseServerError(t *testing.T) {
	_, err := parseInitResponse([]byte(`{"status":"error","error":"blocked"}`))
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if protoErr.Message != "blocked" {
		t.Errorf("message = %q", protoErr.Message)
	}
}

func TestParseInitResponseServerErrorWithoutMessage(t *testing.T) {
	_, err := parseInitResponse([]byte(`{"status":"error"}`))
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if protoErr.Message != "unknown error" {
		t.Errorf("message = %q", protoErr.Message)
	}
}

func TestParseInitResponseMalformed(t *testing.T) {
	if _, err := parseInitResponse([]byte(`{"status":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseInitResponseMissingRequiredObjects(t *testing.T) {
	cases := map[string]string{
		"missing user":    `{"status":"success","device":{"uuid":"d"},"adslots":[]}`,
		"missing device":  `{"status":"success","user":{"id":1},"adslots":[]}`,
		"missing adslots": `{"status":"success","device":{"uuid":"d"},"user":{"id":1}}`,
	}
	for name, body := range cases {
		if _, err := parseInitResponse([]byte(body)); err == nil {
			t.Errorf("%s: expected parse failure", name)
		}
	}
}

func TestParseInitResponseSkipsAdslotsWithoutID(t *testing.T) {
	body := `{"status":"success","device":{"uuid":"d"},"user":{"id":1},
		"adslots":[{"name":"broken","type":"offerwall"},{"id":3,"name":"ok","type":"offerwall"}]}`
	sess, err := parseInitResponse([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sess.Placements) != 1 || sess.Placements[0].ID != 3 {
		t.Fatalf("placements = %+v", sess.Placements)
	}
}

func TestEncodeInitRequestOmitsUnsetOptionals(t *testing.T) {
	body, err := encodeInitRequest(initRequest{
		PlacementID:        42,
		ExternalIdentifier: "u1",
		IsPartitioned:      true,
		DeviceInfo:         core.DeviceSnapshot{"make": "Mock"},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(body)
	for _, banned := range []string{`"age"`, `"gender"`, `"user_agent"`, `"client_hints"`, `"device_uuid"`} {
		if strings.Contains(s, banned) {
			t.Errorf("unset optional %s serialized: %s", banned, s)
		}
	}
	if !strings.Contains(s, `"device_info"`) {
		t.Errorf("device_info missing: %s", s)
	}
}

func TestParseFeedResponse(t *testing.T) {
	offers, err := parseFeedResponse([]byte(`{"status":"success","offers":[{"id":1},{"id":2}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if offers != `[{"id":1},{"id":2}]` {
		t.Fatalf("offers not passed through verbatim: %s", offers)
	}

	if _, err := parseFeedResponse([]byte(`{"status":"error","error":"nope"}`)); err == nil {
		t.Fatal("expected error status to fail")
	}
	if _, err := parseFeedResponse([]byte(`{"status":"success"}`)); err == nil {
		t.Fatal("expected missing offers to fail")
	}
	if _, err := parseFeedResponse([]byte(`{"status":"weird"}`)); err == nil {
		t.Fatal("expected unknown status to fail")
	}
	if _, err := parseFeedResponse([]byte(`not json`)); err == nil {
		t.Fatal("expected malformed JSON to fail")
	}
}
