package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileforms/pkg/gateway"
	"github.com/goliatone/go-profileforms/pkg/record"
)

func TestMemorySubmitThenFetchRoundTrip(t *testing.T) {
	gw := gateway.NewMemory(nil)
	ctx := context.Background()

	created, err := gw.Submit(ctx, "", record.Record{
		"fullName":     "Amina Diallo",
		"emailAddress": "amina@example.com",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("created record carries no id: %v", created)
	}

	// A later patch only touches one field; everything else survives.
	if _, err := gw.Submit(ctx, id, record.Record{"emailAddress": "amina.diallo@example.com"}); err != nil {
		t.Fatalf("Submit patch: %v", err)
	}

	fetched, err := gw.Fetch(ctx, id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := record.Record{
		"fullName":     "Amina Diallo",
		"emailAddress": "amina.diallo@example.com",
		"id":           id,
	}
	if diff := cmp.Diff(want, fetched); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryFetchUnknownID(t *testing.T) {
	gw := gateway.NewMemory(nil)
	if _, err := gw.Fetch(context.Background(), "nope"); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemorySeedIsCopied(t *testing.T) {
	seed := record.Record{"fullName": "Original"}
	gw := gateway.NewMemory(map[string]record.Record{"r1": seed})

	seed["fullName"] = "Mutated"
	fetched, err := gw.Fetch(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if fetched["fullName"] != "Original" {
		t.Fatalf("gateway shares storage with the seed map")
	}
}

func TestMemoryScriptedErrorIsOneShot(t *testing.T) {
	gw := gateway.NewMemory(nil)
	scripted := &gateway.SubmissionError{Message: "maintenance window", Status: 503}
	gw.SubmitErr = scripted

	_, err := gw.Submit(context.Background(), "", record.Record{"fullName": "x"})
	sub, ok := gateway.AsSubmissionError(err)
	if !ok || sub.Status != 503 {
		t.Fatalf("err = %v, want the scripted rejection", err)
	}

	if _, err := gw.Submit(context.Background(), "", record.Record{"fullName": "x"}); err != nil {
		t.Fatalf("second Submit still failing: %v", err)
	}
	if gw.Len() != 1 {
		t.Fatalf("stored records = %d, want 1", gw.Len())
	}
}

func TestMemoryHonoursCancelledContext(t *testing.T) {
	gw := gateway.NewMemory(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gw.Submit(ctx, "", record.Record{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
