package util

import "testing"

func TestToScreamingSnakeCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Port", "PORT"},
		{"GuessRate", "GUESS_RATE"},
		{"TLSCert", "TLS_CERT"},
		{"SelfTLS", "SELF_TLS"},
		{"HIBPCacheSize", "HIBP_CACHE_SIZE"},
		{"TLSCert TLSKey", "TLS_CERT TLS_KEY"},
		{"SelfTLS false", "SELF_TLS FALSE"},
	}

	for _, tc := range cases {
		if got := ToScreamingSnakeCase(tc.in); got != tc.want {
			t.Errorf("ToScreamingSnakeCase(%q): %q, want: %q", tc.in, got, tc.want)
		}
	}
}

func TestHostMemory(t *testing.T) {
	m := HostMemory()
	if m.HeapAllocMiB <= 0 {
		t.Errorf("Heap allocation should be positive, got %f", m.HeapAllocMiB)
	}
	if m.Goroutines < 1 {
		t.Errorf("There should be at least one goroutine")
	}
}
