package core

import "testing"

func TestParsePlacementKind(t *testing.T) {
	cases := map[string]PlacementKind{
		"offerwall":      KindOfferwall,
		"offerwall_api":  KindOfferwallAPI,
		"web_surveywall": KindWebSurveywall,
		"video":          KindOther,
		"":               KindOther,
	}
	for in, want := range cases {
		if got := ParsePlacementKind(in); got != want {
			t.Errorf("ParsePlacementKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlacementLookup(t *testing.T) {
	s := &Session{Placements: []Placement{
		{ID: 7, Name: "main", Kind: KindOfferwall},
		{ID: 9, Name: "main", Kind: KindWebSurveywall},
		{ID: 12, Name: "feed", Kind: KindOfferwallAPI},
	}}

	p, ok := s.PlacementByID(12)
	if !ok || p.Name != "feed" {
		t.Fatalf("PlacementByID(12) = %+v, %v", p, ok)
	}

	// Duplicate names: first match wins.
	p, ok = s.PlacementByName("main")
	if !ok || p.ID != 7 {
		t.Fatalf("PlacementByName(main) = %+v, %v", p, ok)
	}

	if _, ok := s.PlacementByID(99); ok {
		t.Fatal("expected no match for unknown id")
	}
	if _, ok := s.PlacementByName("missing"); ok {
		t.Fatal("expected no match for unknown name")
	}
}
