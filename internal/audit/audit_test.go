package audit

import (
	"context"
	"pwd-strength/pkg/strength"
	"strings"
	"testing"
)

const candidates = "password\nXk9#mQ2vLp7!\r\nabcXYZ123\n\nXk9#mQ2vLp7!Zr\nhunter2\n"

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), strings.NewReader(candidates), Options{Workers: 3, MinScore: 50})
	if err != nil {
		t.Fatalf("Should not fail auditing: %s", err)
	}

	if report.Total != 5 {
		t.Errorf("Total: %d, want: 5", report.Total)
	}
	for _, l := range strength.Labels() {
		if report.Labels[l] != 1 {
			t.Errorf("Label %s: %d, want: 1", l, report.Labels[l])
		}
	}
	if report.Common != 1 {
		t.Errorf("Common: %d, want: 1", report.Common)
	}
	if report.Rejected != 2 {
		t.Errorf("Rejected: %d, want: 2", report.Rejected)
	}
	if report.Mean != 52.2 {
		t.Errorf("Mean: %f, want: 52.2", report.Mean)
	}
	if report.Median != 53 || report.P10 != 1 || report.P90 != 88 {
		t.Errorf("Percentiles median=%d p10=%d p90=%d, want 53, 1, 88", report.Median, report.P10, report.P90)
	}

	summary := report.Summary()
	if !strings.Contains(summary, "Audited 5 candidates") || !strings.Contains(summary, "Below score 50: 2") {
		t.Errorf("Unexpected summary:\n%s", summary)
	}
	if strings.Contains(summary, "hunter2") {
		t.Errorf("Summary should never include candidates")
	}
}

func TestRun_Empty(t *testing.T) {
	report, err := Run(context.Background(), strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("Should not fail auditing: %s", err)
	}
	if report.Total != 0 || report.Mean != 0 {
		t.Errorf("Empty input should produce an empty report: %+v", report)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, strings.NewReader(candidates), Options{Workers: 1}); err == nil {
		t.Errorf("Should fail with a cancelled context")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []uint64{10, 20, 30, 40}
	if got := percentile(sorted, 50); got != 20 {
		t.Errorf("percentile 50: %d, want: 20", got)
	}
	if got := percentile(sorted, 100); got != 40 {
		t.Errorf("percentile 100: %d, want: 40", got)
	}
	if got := percentile(sorted, 0); got != 10 {
		t.Errorf("percentile 0: %d, want: 10", got)
	}
}
