package topic

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ,  ", nil},
		{"alice", []string{"alice"}},
		{" alice , Bob,,carol ", []string{"alice", "Bob", "carol"}},
		{"Alice,alice,ALICE,bob", []string{"Alice", "bob"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitList(tt.in)); diff != "" {
			t.Errorf("splitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestValidateEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		emails  []string
		wantErr bool
	}{
		{"none", nil, false},
		{"valid", []string{"a@example.com", "b.c+d@example.org"}, false},
		{"max length", []string{strings.Repeat("a", 242) + "@example.com"}, false},
		{"too long", []string{strings.Repeat("a", 243) + "@example.com"}, true},
		{"no at sign", []string{"not-an-email"}, true},
		{"display name", []string{"Bob <bob@example.com>"}, true},
		{"second invalid", []string{"a@example.com", "nope"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEmails(tt.emails)
			if tt.wantErr {
				reason, ok := domain.AbortReasonOf(err)
				if !ok || reason != domain.AbortMalformedInput {
					t.Errorf("expected MALFORMED_INPUT abort, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseAutoClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1000000", 0, false},
		{"1e-13", 0, false},
		{"0.0000000000001", 0, false},
		{"0x1p-2", 0, false},
		{"+2", 0, false},
		{"2h", 0, false},
		{".5", 30 * time.Minute, true},
		{"24", 24 * time.Hour, true},
		{" 1.5 ", 90 * time.Minute, true},
	}
	for _, tt := range tests {
		got, ok := parseAutoClose(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseAutoClose(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseCategoryRef(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	if _, _, ok := parseCategoryRef("  "); ok {
		t.Error("blank ref should not resolve")
	}
	if got, name, ok := parseCategoryRef(id.String()); !ok || got != id || name != "" {
		t.Errorf("id ref: got %v %q %v", got, name, ok)
	}
	if got, name, ok := parseCategoryRef(" Neil's Blog "); !ok || got != uuid.Nil || name != "Neil's Blog" {
		t.Errorf("name ref: got %v %q %v", got, name, ok)
	}
}

func TestStagedUsername(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("12345678-1234-1234-1234-123456789abc")
	got := stagedUsername("John.Doe@example.com", id)
	if got != "john-doe_12345678" {
		t.Errorf("stagedUsername = %q", got)
	}
}
