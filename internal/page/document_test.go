package page

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func sampleDoc() *Document {
	return &Document{Blocks: []Block{
		NewBlock("nav", &Navigation{CompanyName: "Mi Empresa", Buttons: []NavButton{{ID: "home", Label: "Inicio", URL: "#"}}}, 0),
		NewBlock("cta", &CTA{Title: "Contacto", ButtonText: "Contactar", BackgroundImage: "https://img/x.jpg"}, 1),
		NewBlock("yt", &YouTube{Title: "Video", VideoID: "S9w88y5Od9w"}, 2),
	}}
}

func TestBlockJSONKeepsVariant(t *testing.T) {
	doc := sampleDoc()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(raw), `"type":"cta"`) || !strings.Contains(string(raw), `"buttonText":"Contactar"`) {
		t.Fatalf("unexpected wire form: %s", raw)
	}

	var back Document
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	cta, ok := back.Blocks[1].Content.(*CTA)
	if !ok {
		t.Fatalf("content type = %T, want *CTA", back.Blocks[1].Content)
	}
	if cta.Title != "Contacto" || back.Blocks[1].Position != 1 {
		t.Errorf("decoded = %+v", back.Blocks[1])
	}
}

func TestBlockJSONRejectsMismatch(t *testing.T) {
	b := Block{ID: "x", Type: KindFooter, Content: &CTA{}}
	if _, err := json.Marshal(b); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("Marshal mismatch error = %v", err)
	}
	var out Block
	if err := json.Unmarshal([]byte(`{"id":"x","type":"carousel","content":{}}`), &out); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("Unmarshal unknown type error = %v", err)
	}
}

func TestDocumentValidate(t *testing.T) {
	doc := sampleDoc()
	if err := doc.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	dup := sampleDoc()
	dup.Blocks[2].ID = "nav"
	if err := dup.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("duplicate ids not rejected: %v", err)
	}

	misplaced := sampleDoc()
	misplaced.Blocks[1].Position = 7
	if err := misplaced.Validate(); err == nil {
		t.Errorf("position mismatch not rejected")
	}

	empty := sampleDoc()
	empty.Blocks[1].Content.(*CTA).BackgroundImage = ""
	if err := empty.Validate(); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("empty image not rejected: %v", err)
	}

	if err := (&Document{}).Validate(); err == nil {
		t.Errorf("empty document should be invalid")
	}
}

func TestDocumentEditing(t *testing.T) {
	doc := sampleDoc()

	if !doc.Move("yt", 0) {
		t.Fatal("Move returned false")
	}
	if doc.Blocks[0].ID != "yt" || doc.Blocks[1].ID != "nav" || doc.Blocks[2].Position != 2 {
		t.Errorf("after Move: %v", ids(doc))
	}
	if !doc.Move("yt", 99) || doc.Blocks[2].ID != "yt" {
		t.Errorf("Move past end should clamp: %v", ids(doc))
	}

	if !doc.Remove("nav") || len(doc.Blocks) != 2 || doc.Blocks[0].Position != 0 {
		t.Errorf("after Remove: %v", ids(doc))
	}
	if doc.Remove("missing") {
		t.Errorf("Remove(missing) = true")
	}

	if err := doc.Append(NewBlock("cta", &CTA{}, 0)); err == nil {
		t.Errorf("Append should reject duplicate ids")
	}
	if err := doc.Append(NewBlock("footer", &Footer{Company: "X", Description: "Y"}, 0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if b, ok := doc.Find("footer"); !ok || b.Position != 2 {
		t.Errorf("appended block = %+v", b)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("edited document invalid: %v", err)
	}
}

func TestRecordAndClone(t *testing.T) {
	doc := sampleDoc()
	rec := Record(doc.Blocks)
	if _, ok := rec[KindYouTube].(*YouTube); !ok || len(rec) != 3 {
		t.Errorf("Record() = %v", rec)
	}

	clone, err := CloneBlocks(doc.Blocks)
	if err != nil {
		t.Fatalf("CloneBlocks() error = %v", err)
	}
	clone[1].Content.(*CTA).Title = "changed"
	if doc.Blocks[1].Content.(*CTA).Title != "Contacto" {
		t.Errorf("clone shares content with original")
	}
}

func ids(d *Document) []string {
	var out []string
	for _, b := range d.Blocks {
		out = append(out, b.ID)
	}
	return out
}
