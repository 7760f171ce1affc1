package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/strength"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, "generate", "--prefs", "memory:", "-l", "20", "-c", "3",
		"--upper=true", "--lower=true", "--digit=true", "--symbol=true")
	if err != nil {
		t.Fatalf("Should not fail generating: %s", err)
	}

	lines := strings.Fields(out)
	if len(lines) != 3 {
		t.Fatalf("Should print 3 passwords, got %d: %q", len(lines), out)
	}
	for _, pwd := range lines {
		if len([]rune(pwd)) != 20 {
			t.Errorf("Length of %q: %d, want: 20", pwd, len([]rune(pwd)))
		}
		if c := strength.CheckCriteria(pwd); !c.Length || c.Classes() != 4 {
			t.Errorf("Generated password %q should be long and use every class", pwd)
		}
	}
}

func TestGenerateCommand_NoClass(t *testing.T) {
	_, err := run(t, "generate", "--prefs", "memory:", "-l", "8", "-c", "1",
		"--upper=false", "--lower=false", "--digit=false", "--symbol=false")
	if err == nil {
		t.Fatalf("Should fail without classes")
	}
	if !strings.Contains(err.Error(), generator.ErrNoClassSelected.Error()) {
		t.Errorf("Error should name the missing classes: %s", err)
	}
}

func TestPrefsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	out, err := run(t, "prefs", "theme", "--prefs", path)
	if err != nil || strings.TrimSpace(out) != "dark" {
		t.Errorf("Default theme: %q err=%v, want: dark", out, err)
	}

	out, err = run(t, "prefs", "theme", "toggle", "--prefs", path)
	if err != nil || strings.TrimSpace(out) != "light" {
		t.Errorf("Toggled theme: %q err=%v, want: light", out, err)
	}

	out, err = run(t, "prefs", "theme", "--prefs", path)
	if err != nil || strings.TrimSpace(out) != "light" {
		t.Errorf("Persisted theme: %q err=%v, want: light", out, err)
	}

	out, err = run(t, "prefs", "visits", "--prefs", path)
	if err != nil || strings.TrimSpace(out) != "0" {
		t.Errorf("Visits: %q err=%v, want: 0", out, err)
	}

	if _, err = run(t, "prefs", "theme", "sideways", "--prefs", path); err == nil {
		t.Errorf("Unknown theme argument should fail")
	}
}

func TestAuditCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("password\nXk9#mQ2vLp7!\nhunter2\n"), 0o600); err != nil {
		t.Fatalf("Should not fail writing fixture: %s", err)
	}

	out, err := run(t, "audit", "--prefs", "memory:", "-i", path, "-w", "2", "--min-score", "50")
	if err != nil {
		t.Fatalf("Should not fail auditing: %s", err)
	}
	if !strings.Contains(out, "Audited 3 candidates") {
		t.Errorf("Summary should count the candidates: %q", out)
	}
	if !strings.Contains(out, "Below score 50: 2") {
		t.Errorf("Summary should count rejected candidates: %q", out)
	}
}

func TestDescribe(t *testing.T) {
	res := strength.Evaluate("Passw0rd!")
	lines := describe(res)

	if !strings.HasPrefix(lines[0], "Score 40/100, Weak.") {
		t.Errorf("Headline: %q", lines[0])
	}
	if len(lines) != 2+len(res.Tips) {
		t.Errorf("Lines: %d, want: %d", len(lines), 2+len(res.Tips))
	}
	for _, l := range lines {
		if strings.Contains(l, "Passw0rd!") {
			t.Errorf("Output should never contain the candidate: %q", l)
		}
	}
}
