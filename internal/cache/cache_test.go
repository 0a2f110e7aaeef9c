package cache

import (
	"testing"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
)

func TestKey_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b models.Topic
		same bool
	}{
		{a: "Reforma Tributária", b: "reforma tributária", same: true},
		{a: "  Copa  do Mundo ", b: "Copa do Mundo", same: true},
		{a: "Copa do Mundo", b: "Copa América", same: false},
	}

	for _, tt := range tests {
		if got := Key(tt.a) == Key(tt.b); got != tt.same {
			t.Errorf("Key(%q) == Key(%q) = %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestCache_MarkProcessed(t *testing.T) {
	t.Parallel()

	c := New()

	if !c.MarkProcessed("Eleições") {
		t.Fatal("first MarkProcessed() = false, want true")
	}
	if c.MarkProcessed("eleições ") {
		t.Error("duplicate MarkProcessed() = true, want false")
	}
	if !c.IsProcessed("ELEIÇÕES") {
		t.Error("IsProcessed() = false, want true")
	}
	if c.IsProcessed("Clima") {
		t.Error("IsProcessed(unseen) = true")
	}
}

func TestCache_Articles(t *testing.T) {
	t.Parallel()

	c := New()
	c.MarkProcessed("Futebol")
	c.MarkProcessed("Clima")
	c.AddArticle(models.Article{Topic: "Futebol", Title: "Gol!"})

	got, ok := c.GetArticle("futebol")
	if !ok || got.Title != "Gol!" {
		t.Errorf("GetArticle() = %+v, %v", got, ok)
	}
	if _, ok := c.GetArticle("Clima"); ok {
		t.Error("GetArticle(failed topic) found an article")
	}

	stats := c.Stats()
	if stats["processed"] != 2 || stats["articles"] != 1 || stats["failed"] != 1 {
		t.Errorf("Stats() = %v", stats)
	}
}
