package version

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"bare", "1.2.3", "", "", "zeron 1.2.3"},
		{"prerelease", "0.1.0-dev", "", "", "zeron 0.1.0-dev"},
		{"commit and date", "1.2.3", "abc123", "2024-01-15T10:30:00Z", "zeron 1.2.3 (abc123) built 2024-01-15T10:30:00Z"},
		{"not semver", "main", "", "", "zeron main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
			if got := Banner(false); got != tt.want {
				t.Fatalf("Banner = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBannerColored(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	got := Banner(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("Banner(true) = %q", got)
	}

	Version = "dev"
	if got := Banner(true); got != "zeron dev" {
		t.Fatalf("non-semver must stay plain, got %q", got)
	}
}
