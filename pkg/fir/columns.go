package fir

import (
	"strings"
	"time"
)

// Column describes one exported attribute.
type Column struct {
	Key       string
	Header    string
	PDFHeader string
	// NA marks columns rendered as "N/A" when empty.
	NA bool
}

// Columns is the export layout, in order.
var Columns = []Column{
	{Key: "firNumber", Header: "FIR Number", PDFHeader: "FIR No"},
	{Key: "district", Header: "District"},
	{Key: "policeStation", Header: "Police Station"},
	{Key: "act", Header: "ACT"},
	{Key: "ipcSections", Header: "IPC Sections"},
	{Key: "dateTime", Header: "Date & Time"},
	{Key: "generalDiaryRef", Header: "General Diary Ref"},
	{Key: "infoType", Header: "Info Type"},
	{Key: "placeOccurrence", Header: "Place of Occurrence"},
	{Key: "complainantName", Header: "Complainant Name"},
	{Key: "complainantDob", Header: "Complainant DOB"},
	{Key: "complainantNationality", Header: "Complainant Nationality"},
	{Key: "complainantAadhaar", Header: "Complainant Aadhaar"},
	{Key: "complainantOccupation", Header: "Complainant Occupation"},
	{Key: "complainantMobile", Header: "Complainant Mobile"},
	{Key: "complainantAddress", Header: "Complainant Address"},
	{Key: "suspectName", Header: "Suspect Name", NA: true},
	{Key: "suspectAddress", Header: "Suspect Address", NA: true},
	{Key: "enquiryOfficerName", Header: "Enquiry Officer Name"},
	{Key: "enquiryOfficerRank", Header: "Enquiry Officer Rank"},
}

// Headers returns the export headers; pdf selects the short PDF variants.
func Headers(pdf bool) []string {
	out := make([]string, 0, len(Columns))
	for _, col := range Columns {
		if pdf && col.PDFHeader != "" {
			out = append(out, col.PDFHeader)
			continue
		}
		out = append(out, col.Header)
	}
	return out
}

// Get returns the raw string value of key. IPC sections are joined with ", ".
func (r Record) Get(key string) string {
	switch key {
	case "id":
		return string(r.ID)
	case "firNumber":
		return r.FIRNumber
	case "dateTime":
		return r.DateTime
	case "ipcSections":
		return strings.Join(r.IPCSections, ", ")
	case "district":
		return r.District
	case "policeStation":
		return r.PoliceStation
	case "act":
		return r.Act
	case "generalDiaryRef":
		return r.GeneralDiaryRef
	case "infoType":
		return r.InfoType
	case "placeOccurrence":
		return r.PlaceOccurrence
	case "complainantName":
		return r.ComplainantName
	case "complainantDob":
		return r.ComplainantDob
	case "complainantNationality":
		return r.ComplainantNationality
	case "complainantAadhaar":
		return r.ComplainantAadhaar
	case "complainantOccupation":
		return r.ComplainantOccupation
	case "complainantMobile":
		return r.ComplainantMobile
	case "complainantAddress":
		return r.ComplainantAddress
	case "suspectName":
		return r.SuspectName
	case "suspectAddress":
		return r.SuspectAddress
	case "enquiryOfficerName":
		return r.EnquiryOfficerName
	case "enquiryOfficerRank":
		return r.EnquiryOfficerRank
	}
	return ""
}

// Row renders the record for export: timestamps in loc, "N/A" for empty
// suspect columns.
func (r Record) Row(loc *time.Location) []string {
	out := make([]string, 0, len(Columns))
	for _, col := range Columns {
		value := r.Get(col.Key)
		if col.Key == "dateTime" {
			value = r.FiledLocal(loc)
		}
		if col.NA && strings.TrimSpace(value) == "" {
			value = "N/A"
		}
		out = append(out, value)
	}
	return out
}

// SearchValues returns every non-empty attribute value, for free-text search.
func (r Record) SearchValues() []string {
	keys := append([]string{"id"}, columnKeys()...)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if v := r.Get(key); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func columnKeys() []string {
	out := make([]string, 0, len(Columns))
	for _, col := range Columns {
		out = append(out, col.Key)
	}
	return out
}
