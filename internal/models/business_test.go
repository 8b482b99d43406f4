package models

import "testing"

func TestProfileGetSet(t *testing.T) {
	var p BusinessProfile
	for _, f := range Fields {
		if p.Has(f) {
			t.Fatalf("%s should start empty", f)
		}
		p.Set(f, string(f)+"-value")
	}
	for _, f := range Fields {
		if got := p.Get(f); got != string(f)+"-value" {
			t.Errorf("Get(%s) = %q", f, got)
		}
	}
	p.Set(Field("unknown"), "x")
	if p.Get(Field("unknown")) != "" {
		t.Errorf("unknown field should read empty")
	}
}

func TestProfileMerge(t *testing.T) {
	p := BusinessProfile{BusinessName: "Ana's Deli"}
	p.Merge(BusinessProfile{BusinessName: "Other", Industry: "gastronomía"})
	if p.BusinessName != "Ana's Deli" {
		t.Errorf("Merge overwrote a filled field: %q", p.BusinessName)
	}
	if p.Industry != "gastronomía" {
		t.Errorf("Merge did not fill industry: %q", p.Industry)
	}
}

func TestParseField(t *testing.T) {
	for _, s := range []string{"businessName", "business_name", "nombre_negocio"} {
		if f, ok := ParseField(s); !ok || f != FieldBusinessName {
			t.Errorf("ParseField(%q) = %q, %v", s, f, ok)
		}
	}
	if _, ok := ParseField("age"); ok {
		t.Errorf("ParseField(age) should fail")
	}
}
