package app

import "testing"

func TestParseMovieIDList(t *testing.T) {
	t.Parallel()

	ids, err := parseMovieIDList("603, 604,605")
	if err != nil {
		t.Fatalf("parseMovieIDList failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != 603 || ids[1] != 604 || ids[2] != 605 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestParseMovieIDListSkipsEmptyParts(t *testing.T) {
	t.Parallel()

	ids, err := parseMovieIDList("603,,604,")
	if err != nil {
		t.Fatalf("parseMovieIDList failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d (%v)", len(ids), ids)
	}
}

func TestParseMovieIDListRejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0", "-5", "abc", "603,zero"} {
		if _, err := parseMovieIDList(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw          string
		defaultValue string
		want         string
		wantErr      bool
	}{
		{raw: "table", defaultValue: "json", want: "table"},
		{raw: " JSON ", defaultValue: "table", want: "json"},
		{raw: "", defaultValue: "table", want: "table"},
		{raw: "yaml", defaultValue: "table", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseOutputFormat(tc.raw, tc.defaultValue)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseOutputFormat(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOutputFormat(%q) failed: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseOutputFormat(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
