package version

import "testing"

func TestGetPrefersLinkerValue(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v0.3.0"
	if got := Get(); got != "v0.3.0" {
		t.Fatalf("Get() = %q, want %q", got, "v0.3.0")
	}

	Version = ""
	if Get() == "" {
		t.Fatal("Get() must never be empty")
	}
}
