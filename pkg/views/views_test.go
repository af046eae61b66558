package views_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/testsupport"
	"github.com/goliatone/go-firform/pkg/views"
)

func newViews(t *testing.T) *views.Views {
	t.Helper()
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	v, err := views.New(catalog, "en-US", loc)
	if err != nil {
		t.Fatalf("new views: %v", err)
	}
	return v
}

func TestFIR_RendersEveryColumn(t *testing.T) {
	v := newViews(t)
	record := testsupport.SampleFIRs(1)[0]
	record.IPCSections = []string{"420", "302"}
	record.SuspectName = ""

	got, err := v.FIR(record)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"FIR Details",
		"ID: 1",
		"FIR Number: FIR-",
		"IPC Sections: 420, 302",
		"Suspect Name: N/A",
		"Date & Time: 01/03/2024, 15:30:00",
		"Enquiry Officer Rank: PSI",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFIR_PrintsTextUnescaped(t *testing.T) {
	v := newViews(t)
	record := testsupport.SampleFIR()
	record.ComplainantName = "Asha D'Souza"
	record.ComplainantAddress = "Flat 4 <B> & Co, Pune"
	record.IPCSections = nil

	got, err := v.FIR(record)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Complainant Name: Asha D'Souza",
		"Complainant Address: Flat 4 <B> & Co, Pune",
		"IPC Sections: N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "&amp;") || strings.Contains(got, "&#39;") {
		t.Fatalf("output is HTML escaped:\n%s", got)
	}
}

func TestDashboard(t *testing.T) {
	v := newViews(t)
	var out strings.Builder
	got, err := v.Dashboard(views.Dashboard{
		User:  backend.User{FirstName: "Ravi", LastName: "Kumar", Email: "officer@example.test"},
		Total: 3,
		Stations: []views.StationCount{
			{Station: "Station A", Count: 2},
			{Station: "Station B", Count: 1},
		},
		Actions: []string{"fir new", "report list"},
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.String() != got {
		t.Fatalf("writer and result differ")
	}
	for _, want := range []string{
		"Welcome, Ravi Kumar",
		"Total FIRs: 3",
		"FIRs by police station",
		"Station A: 2",
		"report list",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestProfile_EmptyValuesShowNA(t *testing.T) {
	v := newViews(t)
	got, err := v.Profile(backend.User{FirstName: "Ravi", Email: "officer@example.test"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"My Profile", "Name: Ravi", "Mobile: N/A"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
