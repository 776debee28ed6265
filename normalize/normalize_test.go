package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestToSequence(t *testing.T) {
	if got := ToSequence(nil); got == nil || len(got) != 0 {
		t.Fatalf("ToSequence(nil)=%#v, want empty non-nil slice", got)
	}
	if got := ToSequence("22"); !reflect.DeepEqual(got, []any{"22"}) {
		t.Fatalf("ToSequence(scalar)=%#v", got)
	}
	arr := []any{"a", float64(2), nil}
	got := ToSequence(arr)
	if !reflect.DeepEqual(got, arr) {
		t.Fatalf("ToSequence(array)=%#v, want identity", got)
	}
	if &got[0] != &arr[0] {
		t.Fatalf("expected the same backing array to be returned")
	}
}

func TestStringsFromDecodedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"null", `null`, []string{}},
		{"single port", `22`, []string{"22"}},
		{"single string", `"ssh"`, []string{"ssh"}},
		{"array", `[44444, 2222]`, []string{"44444", "2222"}},
		{"mixed with null", `["wget x", null, true]`, []string{"wget x", "true"}},
		{"fraction", `1.5`, []string{"1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := Strings(v); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Strings(%s)=%#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "-"},
		{"2024-01-01T10:11:12.345Z", "10:11:12"},
		{"2024-01-01T10:11:12Z", "10:11:12"},
		{"2024-01-01T10:11:12+02:00", "10:11:12"},
		{"2024-01-01T10:11:12.5-05:00", "10:11:12"},
		{"2024-01-01", "2024-01-01"},
		{"2024-01-01T", "2024-01-01T"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimestampIsDeterministic(t *testing.T) {
	in := "2025-09-01T03:04:05.000Z"
	first := FormatTimestamp(in)
	for i := 0; i < 5; i++ {
		if got := FormatTimestamp(in); got != first {
			t.Fatalf("FormatTimestamp not deterministic: %q vs %q", got, first)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(nil); got != "?" {
		t.Fatalf("FormatDistance(nil)=%q", got)
	}
	if got := FormatDistance(floatPtr(0.12345)); got != "0.123" {
		t.Fatalf("FormatDistance(0.12345)=%q", got)
	}
	if got := FormatDistance(floatPtr(1)); got != "1.000" {
		t.Fatalf("FormatDistance(1)=%q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(nil, "?"); got != "?" {
		t.Fatalf("FormatNumber(nil)=%q", got)
	}
	if got := FormatNumber(floatPtr(7), "?"); got != "7" {
		t.Fatalf("FormatNumber(7)=%q", got)
	}
	if got := FormatNumber(floatPtr(0.85), "-"); got != "0.85" {
		t.Fatalf("FormatNumber(0.85)=%q", got)
	}
}

func TestResolveRuleTextOrder(t *testing.T) {
	tests := []struct {
		name                    string
		yaml, yamlRaw, document *string
		want                    string
	}{
		{"document only", nil, nil, strPtr("doc"), "doc"},
		{"yaml beats document", strPtr("y"), nil, strPtr("doc"), "y"},
		{"yaml_raw beats document", nil, strPtr("raw"), strPtr("doc"), "raw"},
		{"yaml beats yaml_raw", strPtr("y"), strPtr("raw"), nil, "y"},
		{"empty yaml is skipped", strPtr(""), strPtr("raw"), strPtr("doc"), "raw"},
		{"nothing", nil, nil, nil, NoRuleText},
		{"all empty", strPtr(""), strPtr(""), strPtr(""), NoRuleText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRuleText(tt.yaml, tt.yamlRaw, tt.document)
			if got != tt.want {
				t.Fatalf("ResolveRuleText=%q, want %q", got, tt.want)
			}
			if again := ResolveRuleText(tt.yaml, tt.yamlRaw, tt.document); again != got {
				t.Fatalf("ResolveRuleText not idempotent: %q vs %q", again, got)
			}
		})
	}
}

func TestTopN(t *testing.T) {
	shown, note := TopN(5)
	if shown != 3 || note != "Showing top 3 of 5 results." {
		t.Fatalf("TopN(5)=%d,%q", shown, note)
	}
	shown, note = TopN(2)
	if shown != 2 || note != "" {
		t.Fatalf("TopN(2)=%d,%q", shown, note)
	}
	shown, note = TopN(3)
	if shown != 3 || note != "" {
		t.Fatalf("TopN(3)=%d,%q", shown, note)
	}
}

func TestOrPlaceholder(t *testing.T) {
	if got := OrPlaceholder("  ", "-"); got != "-" {
		t.Fatalf("OrPlaceholder(blank)=%q", got)
	}
	if got := OrPlaceholder("1.2.3.4", "-"); got != "1.2.3.4" {
		t.Fatalf("OrPlaceholder(ip)=%q", got)
	}
}
