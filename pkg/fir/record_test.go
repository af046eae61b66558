package fir_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-firform/pkg/fir"
)

func TestRecord_DecodesNumericAndStringIDs(t *testing.T) {
	var records []fir.Record
	payload := `[{"id":17,"firNumber":"FIR-17","ipcSections":["420"]},{"id":"abc"},{"id":null}]`
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := []fir.ID{records[0].ID, records[1].ID, records[2].ID}
	if diff := cmp.Diff([]fir.ID{"17", "abc", ""}, got); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_ValuesRoundTrip(t *testing.T) {
	record := fir.Record{
		District:          "Pune",
		IPCSections:       []string{"302", "420"},
		ComplainantMobile: "9876543210",
		SuspectName:       "Unknown",
	}
	back := fir.FromValues(record.Values())
	if diff := cmp.Diff(record.Values(), back.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_Row(t *testing.T) {
	record := fir.Record{
		FIRNumber:   "FIR-1",
		DateTime:    "2024-03-15T04:30:00Z",
		IPCSections: []string{"420", "302"},
	}
	ist := time.FixedZone("IST", 5*3600+1800)
	row := record.Row(ist)

	if len(row) != len(fir.Columns) {
		t.Fatalf("expected %d cells, got %d", len(fir.Columns), len(row))
	}
	if row[4] != "420, 302" {
		t.Fatalf("ipc sections not joined: %q", row[4])
	}
	if row[5] != "15/03/2024, 10:00:00" {
		t.Fatalf("timestamp not localised: %q", row[5])
	}
	if row[16] != "N/A" || row[17] != "N/A" {
		t.Fatalf("suspect columns should be N/A: %q %q", row[16], row[17])
	}
	if row[1] != "" {
		t.Fatalf("empty district should stay empty, got %q", row[1])
	}
}

func TestHeaders(t *testing.T) {
	xlsx := fir.Headers(false)
	pdf := fir.Headers(true)
	if xlsx[0] != "FIR Number" || pdf[0] != "FIR No" {
		t.Fatalf("first header mismatch: %q / %q", xlsx[0], pdf[0])
	}
	if len(xlsx) != 20 || xlsx[19] != "Enquiry Officer Rank" {
		t.Fatalf("unexpected headers: %#v", xlsx)
	}
}
