// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// LEAD TESTS
// =============================================================================

func TestLead_DecodeServiceJSON(t *testing.T) {
	raw := `{
		"id": "lead-1",
		"name": "Ana",
		"email": "ana@example.com",
		"campaignId": "spring-24",
		"createdAt": "2024-03-01T09:30:00.000Z",
		"updatedAt": "2024-03-02T10:00:00.000Z"
	}`

	var lead Lead
	if err := json.Unmarshal([]byte(raw), &lead); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if lead.ID != "lead-1" || lead.CampaignID != "spring-24" {
		t.Errorf("unexpected identity fields: %+v", lead)
	}
	if lead.CreatedAt.Time.After(lead.UpdatedAt.Time) {
		t.Errorf("CreatedAt %v should not be after UpdatedAt %v", lead.CreatedAt, lead.UpdatedAt)
	}
}

func TestLead_FormatCreated(t *testing.T) {
	lead := Lead{CreatedAt: NewTimestamp(time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local))}
	if got := lead.FormatCreated("02/01/2006 15:04"); got != "01/03/2024 09:30" {
		t.Errorf("FormatCreated = %q, want '01/03/2024 09:30'", got)
	}

	if got := (Lead{}).FormatCreated("2006"); got != "-" {
		t.Errorf("zero timestamp = %q, want '-'", got)
	}
}

func TestLead_DecodeLenientTimestamps(t *testing.T) {
	raw := `[
		{"id": "a", "createdAt": "2025-03-01T12:00:00"},
		{"id": "b", "createdAt": "2025-03-01"},
		{"id": "c", "createdAt": ""},
		{"id": "d", "createdAt": null},
		{"id": "e", "createdAt": 1740830400000},
		{"id": "f", "createdAt": "next week"},
		{"id": "g", "createdAt": {"$date": 1}}
	]`

	var leads []Lead
	if err := json.Unmarshal([]byte(raw), &leads); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got := leads[0].FormatCreated("2006-01-02 15:04"); got != "2025-03-01 12:00" {
		t.Errorf("offset-less = %q, want local wall time", got)
	}
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !leads[1].CreatedAt.Time.Equal(want) {
		t.Errorf("date-only = %v, want %v", leads[1].CreatedAt.Time, want)
	}
	for _, i := range []int{2, 3} {
		if !leads[i].CreatedAt.IsZero() || leads[i].FormatCreated("2006") != "-" {
			t.Errorf("lead %s: want a missing timestamp, got %+v", leads[i].ID, leads[i].CreatedAt)
		}
	}
	if want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC); !leads[4].CreatedAt.Time.Equal(want) {
		t.Errorf("epoch millis = %v, want %v", leads[4].CreatedAt.Time, want)
	}
	if got := leads[5].FormatCreated("2006"); got != "next week" {
		t.Errorf("unparsed = %q, want raw text", got)
	}
	if leads[6].CreatedAt.Valid() || leads[6].CreatedAt.Raw == "" {
		t.Errorf("object = %+v, want raw text kept", leads[6].CreatedAt)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		raw  string
	}{
		{in: "2025-03-01T12:00:00Z", want: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{in: "2025-03-01T12:00:00+02:00", want: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2025-03-01T12:00:00.123", want: time.Date(2025, 3, 1, 12, 0, 0, 123e6, time.Local)},
		{in: "2025-03-01 12:00:00", want: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)},
		{in: "2025-03-01T12:00", want: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)},
		{in: " 2025-03-01 ", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-13-01", raw: "2025-13-01"},
		{in: "   "},
	}

	for _, tc := range tests {
		got := ParseTimestamp(tc.in)
		if !got.Time.Equal(tc.want) || got.Raw != tc.raw {
			t.Errorf("ParseTimestamp(%q) = %v/%q, want %v/%q", tc.in, got.Time, got.Raw, tc.want, tc.raw)
		}
	}
}

func TestTimestamp_StorageFormRoundTrip(t *testing.T) {
	for _, ts := range []Timestamp{
		ParseTimestamp("2025-03-01T12:00:00.5"),
		ParseTimestamp("2025-03-01"),
		ParseTimestamp("yesterday"),
		{},
	} {
		back := ParseTimestamp(ts.String())
		if !back.Equal(ts) || back.IsZero() != ts.IsZero() {
			t.Errorf("round trip of %+v gave %+v", ts, back)
		}
	}

	data, err := json.Marshal(Lead{ID: "a", CreatedAt: ParseTimestamp("2025-03-01")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"createdAt":"2025-03-01T00:00:00Z"`) || !strings.Contains(string(data), `"updatedAt":null`) {
		t.Errorf("Marshal = %s", data)
	}
}

func TestCloneLeads(t *testing.T) {
	src := []Lead{{ID: "a"}, {ID: "b"}}
	clone := CloneLeads(src)
	clone[0].ID = "changed"

	if src[0].ID != "a" {
		t.Error("CloneLeads should not share the backing array")
	}

	if got := CloneLeads(nil); got == nil || len(got) != 0 {
		t.Errorf("CloneLeads(nil) = %#v, want empty non-nil slice", got)
	}
}

// =============================================================================
// DRAFT TESTS
// =============================================================================

func TestLeadDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   LeadDraft
		missing []string
	}{
		{"complete", LeadDraft{Name: "Ana", Email: "a@x.io", CampaignID: "c1"}, nil},
		{"empty", LeadDraft{}, []string{FieldName, FieldEmail, FieldCampaignID}},
		{"whitespace name", LeadDraft{Name: "  ", Email: "a@x.io", CampaignID: "c1"}, []string{FieldName}},
		{"missing campaign", LeadDraft{Name: "Ana", Email: "a@x.io"}, []string{FieldCampaignID}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if len(tc.missing) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrIncompleteDraft) {
				t.Fatalf("Validate() = %v, want ErrIncompleteDraft", err)
			}
			for _, field := range tc.missing {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q should mention %q", err, field)
				}
			}
		})
	}
}

func TestLeadDraft_Normalize(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form.
	draft := LeadDraft{Name: "  Jose\u0301 ", Email: " jose@example.com", CampaignID: "c1 "}
	got := draft.Normalize()

	if got.Name != "Jos\u00e9" {
		t.Errorf("Name = %q, want NFC 'José'", got.Name)
	}
	if got.Email != "jose@example.com" || got.CampaignID != "c1" {
		t.Errorf("fields not trimmed: %+v", got)
	}
}

func TestLeadDraft_IsZero(t *testing.T) {
	if !(LeadDraft{}).IsZero() {
		t.Error("empty draft should be zero")
	}
	if (LeadDraft{Email: "x"}).IsZero() {
		t.Error("draft with email should not be zero")
	}
}
