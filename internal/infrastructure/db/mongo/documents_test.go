package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

func TestProfileDoc_ToDomain(t *testing.T) {
	owner := primitive.NewObjectID()
	doc := profileDoc{
		ID:     primitive.NewObjectID(),
		User:   owner,
		Owner:  &ownerDoc{ID: owner, Name: "Alice", Avatar: "a.png"},
		Status: "Developer",
	}

	p := doc.toDomain()
	if p.User.ID != owner.Hex() || p.User.Name != "Alice" || p.User.Avatar != "a.png" {
		t.Fatalf("owner not joined: %+v", p.User)
	}
	if p.Skills == nil || p.Experience == nil || p.Education == nil {
		t.Fatalf("collections must be non-nil for JSON output")
	}

	doc.Owner = nil
	if p := doc.toDomain(); p.User.ID != owner.Hex() || p.User.Name != "" {
		t.Fatalf("missing owner should keep only the id, got %+v", p.User)
	}
}

func TestProfileSet(t *testing.T) {
	status := "Developer"
	company := "Acme"
	set := profileSet(domain.ProfileFields{
		Status:  &status,
		Company: &company,
		Skills:  []string{"Go"},
		Social:  map[string]string{"twitter": "https://twitter.com/a"},
	})

	want := map[string]any{
		"status":         "Developer",
		"company":        "Acme",
		"social.twitter": "https://twitter.com/a",
	}
	for k, v := range want {
		if set[k] != v {
			t.Fatalf("set[%q] = %v, want %v", k, set[k], v)
		}
	}
	for _, k := range []string{"bio", "website", "location", "githubusername", "social"} {
		if _, ok := set[k]; ok {
			t.Fatalf("unexpected key %q in update", k)
		}
	}
}

func TestPostDoc_ToDomain(t *testing.T) {
	doc := postDoc{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Text: "hi"}
	p := doc.toDomain()
	if p.Likes == nil || p.Comments == nil {
		t.Fatalf("likes and comments must be non-nil")
	}
	if p.User != doc.User.Hex() {
		t.Fatalf("unexpected user %q", p.User)
	}
}
