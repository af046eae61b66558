// Package fir holds the First Information Report record as the backend
// stores it, plus the column layout shared by the report table and exports.
package fir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-firform/pkg/validation"
)

// ID identifies a stored record. The backend emits numeric ids; the client
// treats them as opaque strings.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fir: id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Record is one FIR.
type Record struct {
	ID                     ID       `json:"id,omitempty"`
	FIRNumber              string   `json:"firNumber,omitempty"`
	DateTime               string   `json:"dateTime,omitempty"`
	District               string   `json:"district"`
	PoliceStation          string   `json:"policeStation"`
	Act                    string   `json:"act"`
	IPCSections            []string `json:"ipcSections"`
	GeneralDiaryRef        string   `json:"generalDiaryRef"`
	InfoType               string   `json:"infoType"`
	PlaceOccurrence        string   `json:"placeOccurrence"`
	ComplainantName        string   `json:"complainantName"`
	ComplainantDob         string   `json:"complainantDob"`
	ComplainantNationality string   `json:"complainantNationality"`
	ComplainantAadhaar     string   `json:"complainantAadhaar"`
	ComplainantOccupation  string   `json:"complainantOccupation"`
	ComplainantMobile      string   `json:"complainantMobile"`
	ComplainantAddress     string   `json:"complainantAddress"`
	SuspectName            string   `json:"suspectName"`
	SuspectAddress         string   `json:"suspectAddress"`
	EnquiryOfficerName     string   `json:"enquiryOfficerName"`
	EnquiryOfficerRank     string   `json:"enquiryOfficerRank"`
}

// Values returns the record as form state, keyed by the fir form's field
// names.
func (r Record) Values() map[string]any {
	return map[string]any{
		"district":               r.District,
		"policeStation":          r.PoliceStation,
		"act":                    r.Act,
		"ipcSections":            append([]string(nil), r.IPCSections...),
		"generalDiaryRef":        r.GeneralDiaryRef,
		"infoType":               r.InfoType,
		"placeOccurrence":        r.PlaceOccurrence,
		"complainantName":        r.ComplainantName,
		"complainantDob":         r.ComplainantDob,
		"complainantNationality": r.ComplainantNationality,
		"complainantAadhaar":     r.ComplainantAadhaar,
		"complainantOccupation":  r.ComplainantOccupation,
		"complainantMobile":      r.ComplainantMobile,
		"complainantAddress":     r.ComplainantAddress,
		"suspectName":            r.SuspectName,
		"suspectAddress":         r.SuspectAddress,
		"enquiryOfficerName":     r.EnquiryOfficerName,
		"enquiryOfficerRank":     r.EnquiryOfficerRank,
	}
}

// FromValues builds a record from fir form state.
func FromValues(values map[string]any) Record {
	text := func(key string) string { return validation.Text(values[key]) }
	return Record{
		District:               text("district"),
		PoliceStation:          text("policeStation"),
		Act:                    text("act"),
		IPCSections:            append([]string{}, validation.Set(values["ipcSections"])...),
		GeneralDiaryRef:        text("generalDiaryRef"),
		InfoType:               text("infoType"),
		PlaceOccurrence:        text("placeOccurrence"),
		ComplainantName:        text("complainantName"),
		ComplainantDob:         text("complainantDob"),
		ComplainantNationality: text("complainantNationality"),
		ComplainantAadhaar:     text("complainantAadhaar"),
		ComplainantOccupation:  text("complainantOccupation"),
		ComplainantMobile:      text("complainantMobile"),
		ComplainantAddress:     text("complainantAddress"),
		SuspectName:            text("suspectName"),
		SuspectAddress:         text("suspectAddress"),
		EnquiryOfficerName:     text("enquiryOfficerName"),
		EnquiryOfficerRank:     text("enquiryOfficerRank"),
	}
}

// Filed parses DateTime. Records without a timestamp report false.
func (r Record) Filed() (time.Time, bool) {
	value := strings.TrimSpace(r.DateTime)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FiledLocal formats DateTime in loc, or returns "" when absent. Unparseable
// timestamps are shown as stored.
func (r Record) FiledLocal(loc *time.Location) string {
	t, ok := r.Filed()
	if !ok {
		return strings.TrimSpace(r.DateTime)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006, 15:04:05")
}
