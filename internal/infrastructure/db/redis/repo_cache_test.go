package redis

import "testing"

func TestRepoKey(t *testing.T) {
	tests := map[string]string{
		"octocat":    "github:repos:octocat",
		" OctoCat  ": "github:repos:octocat",
	}
	for in, want := range tests {
		if got := repoKey(in); got != want {
			t.Fatalf("repoKey(%q) = %q, want %q", in, got, want)
		}
	}
}
