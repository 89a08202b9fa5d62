package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

var jpegStub = []byte{0xff, 0xd8, 0xff, 0xe0}

func TestIdentifyParsesCandidate(t *testing.T) {
	stub := &stubLLM{reply: `{"name":"OMO Detergent","category":"Chemicals","quantityEstimate":2,"confidence":"High"}`}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	ident, err := c.Identify(context.Background(), jpegStub)
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if ident.Name != "OMO Detergent" || ident.Category != "Chemicals" || ident.QuantityEstimate != 2 {
		t.Errorf("unexpected candidate: %+v", ident)
	}
}

func TestIdentifySendsImageAndPrompt(t *testing.T) {
	stub := &stubLLM{reply: `{"name":"Jik Bleach","category":"Chemicals","quantityEstimate":1,"confidence":"High"}`}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	if _, err := c.Identify(context.Background(), jpegStub); err != nil {
		t.Fatalf("Identify() error = %v", err)
	}

	if len(stub.last) != 1 {
		t.Fatalf("got %d messages, want 1", len(stub.last))
	}
	var sawImage, sawText bool
	for _, part := range stub.last[0].Parts {
		switch p := part.(type) {
		case llms.BinaryContent:
			sawImage = true
			if p.MIMEType != "image/jpeg" {
				t.Errorf("image MIME = %q, want image/jpeg", p.MIMEType)
			}
		case llms.TextContent:
			sawText = true
		}
	}
	if !sawImage || !sawText {
		t.Errorf("message missing parts: image=%v text=%v", sawImage, sawText)
	}
}

func TestIdentifyAcceptsCategoryOutsideTaxonomy(t *testing.T) {
	// No local category validation: the operator confirms the candidate.
	stub := &stubLLM{reply: `{"name":"Mystery Paste","category":"Automotive","quantityEstimate":1,"confidence":"Low"}`}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	ident, err := c.Identify(context.Background(), jpegStub)
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if ident.Category != "Automotive" {
		t.Errorf("category = %q, want pass-through of Automotive", ident.Category)
	}
}

func TestIdentifyDefaultsQuantityEstimate(t *testing.T) {
	stub := &stubLLM{reply: `{"name":"Vim Scouring Paste","category":"Soaps","confidence":"Medium"}`}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	ident, err := c.Identify(context.Background(), jpegStub)
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if ident.QuantityEstimate != 1 {
		t.Errorf("quantityEstimate = %v, want default 1", ident.QuantityEstimate)
	}
}

func TestIdentifyMalformedResponse(t *testing.T) {
	stub := &stubLLM{reply: "that is a bottle of something"}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	_, err := c.Identify(context.Background(), jpegStub)
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("err = %v, want ErrBadResponse", err)
	}
}

func TestIdentifyServiceError(t *testing.T) {
	serviceErr := errors.New("503 service unavailable")
	stub := &stubLLM{err: serviceErr}
	c := NewClassifier(NewModelFromLLM(stub, "stub"))

	_, err := c.Identify(context.Background(), jpegStub)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrBadResponse) {
		t.Error("service error must stay distinguishable from a parse failure")
	}
}
