package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintTiers_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := printTiers(&buf); err != nil {
		t.Fatalf("print tiers: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("output lines = %d, want header + 5 tiers", len(lines))
	}
	if !strings.HasPrefix(lines[0], "TIER") {
		t.Errorf("missing header, got %q", lines[0])
	}
	for _, want := range []string{"Bronze", "250", "350", "Champion", "1100"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
