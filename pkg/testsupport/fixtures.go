// Package testsupport holds fixtures and fakes shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-firform/pkg/fir"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Diff returns a diff string if the values differ.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// SampleFIR returns a record that passes every fir form rule against any
// clock after 1990.
func SampleFIR() fir.Record {
	return fir.Record{
		District:               "Pune",
		PoliceStation:          "Station A",
		Act:                    "IPC",
		IPCSections:            []string{"420"},
		GeneralDiaryRef:        "GD-12/2024",
		InfoType:               "Public",
		PlaceOccurrence:        "Shivaji Nagar",
		ComplainantName:        "Asha Patil",
		ComplainantDob:         "1990-05-01",
		ComplainantNationality: "Indian",
		ComplainantAadhaar:     "123412341234",
		ComplainantOccupation:  "Teacher",
		ComplainantMobile:      "9876543210",
		ComplainantAddress:     "12 MG Road, Pune",
		SuspectName:            "Unknown",
		SuspectAddress:         "Unknown",
		EnquiryOfficerName:     "R Singh",
		EnquiryOfficerRank:     "PSI",
	}
}

// SampleFIRs returns n stored records with ids, FIR numbers and timestamps.
func SampleFIRs(n int) []fir.Record {
	districts := []string{"Pune", "Mumbai", "Nagpur"}
	stations := []string{"Station A", "Station B", "Station C"}
	out := make([]fir.Record, 0, n)
	for i := 0; i < n; i++ {
		r := SampleFIR()
		r.ID = fir.ID(itoa(i + 1))
		r.FIRNumber = "FIR-" + pad(i+1)
		r.DateTime = "2024-03-01T10:00:00Z"
		r.District = districts[i%len(districts)]
		r.PoliceStation = stations[i%len(stations)]
		out = append(out, r)
	}
	return out
}
