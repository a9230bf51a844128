package ledger

import (
	"strings"
	"testing"

	"github.com/mmynk/budgetwise/internal/models"
)

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestAddFriendFormSubmit(t *testing.T) {
	form := NewAddFriendForm(models.DefaultImage)
	form.SetName("Sam")
	form.SetImage("http://x/y")

	friend, ok := form.Submit(fixedID("abc-123"))
	if !ok {
		t.Fatal("expected submit to succeed")
	}
	if friend.ID != "abc-123" {
		t.Errorf("id: expected abc-123, got %s", friend.ID)
	}
	if friend.Name != "Sam" {
		t.Errorf("name: expected Sam, got %s", friend.Name)
	}
	if friend.Balance != 0 {
		t.Errorf("balance: expected 0, got %v", friend.Balance)
	}
	if friend.Image != "http://x/y?=abc-123" {
		t.Errorf("image: got %s", friend.Image)
	}

	// Fields reset after a successful submit
	if form.Name != "" || form.Image != models.DefaultImage {
		t.Errorf("form not reset: %+v", form)
	}
}

func TestAddFriendFormSubmit_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		fname string
		image string
	}{
		{"empty name", "", "http://x/y"},
		{"empty image", "Sam", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewAddFriendForm(models.DefaultImage)
			form.SetName(tt.fname)
			form.SetImage(tt.image)

			called := false
			_, ok := form.Submit(func() string { called = true; return "x" })
			if ok {
				t.Error("expected submit to be skipped")
			}
			if called {
				t.Error("no id should be generated for a skipped submit")
			}
			if form.Name != tt.fname || form.Image != tt.image {
				t.Error("skipped submit should keep the fields")
			}
		})
	}
}

func TestAddFriendFormSubmit_SameImageDistinctURLs(t *testing.T) {
	form := NewAddFriendForm(models.DefaultImage)
	ids := []string{"a", "b"}
	var images []string
	for _, id := range ids {
		form.SetName("Twin")
		f, ok := form.Submit(fixedID(id))
		if !ok {
			t.Fatal("expected submit to succeed")
		}
		if !strings.HasPrefix(f.Image, models.DefaultImage) {
			t.Errorf("image %s should start with the default image", f.Image)
		}
		images = append(images, f.Image)
	}
	if images[0] == images[1] {
		t.Error("expected distinct avatar URLs")
	}
}
