package translate

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestTranslateTableMatch(t *testing.T) {
	e := newTestEngine(1)

	// Short input: no embellishment, fully deterministic.
	got := e.Translate("hello")
	if got != "Jambo" {
		t.Errorf("Translate(%q) = %q, want %q", "hello", got, "Jambo")
	}
}

func TestTranslateLowercasesInput(t *testing.T) {
	e := newTestEngine(1)

	got := e.Translate("HELLO")
	if got != "Jambo" {
		t.Errorf("Translate(%q) = %q, want %q", "HELLO", got, "Jambo")
	}
}

func TestTranslateSubstringMatchBothDirections(t *testing.T) {
	e := newTestEngine(1)

	// "morning" is a substring of the "good morning" key; the key "no" is a
	// substring of a longer token.
	if got := e.Translate("morning"); got != "Habari ya asubuhi" {
		t.Errorf("Translate(%q) = %q, want %q", "morning", got, "Habari ya asubuhi")
	}
	if got := e.Translate("nostalgia"); got != "Hapana" {
		t.Errorf("Translate(%q) = %q, want %q", "nostalgia", got, "Hapana")
	}
}

func TestTranslateFirstEntryWins(t *testing.T) {
	e := newTestEngine(1)

	// "my" matches "my name is" by substring even though it has no entry of
	// its own; the first containing entry in table order is taken.
	if got := e.Translate("my"); got != "Jina langu ni" {
		t.Errorf("Translate(%q) = %q, want %q", "my", got, "Jina langu ni")
	}
}

func TestTranslateUnmatchedTokenPassesThrough(t *testing.T) {
	e := newTestEngine(1)

	// 10 runes exactly: at the embellishment boundary, still deterministic.
	if got := e.Translate("water food"); got != "Maji Chakula" {
		t.Errorf("Translate(%q) = %q, want %q", "water food", got, "Maji Chakula")
	}

	if got := e.Translate("zzz"); got != "zzz" {
		t.Errorf("Translate(%q) = %q, want passthrough", "zzz", got)
	}
}

func TestTranslateEmbellishmentForms(t *testing.T) {
	const input = "hello my good friend"
	const base = "Jambo Jina langu ni Habari ya asubuhi Rafiki"

	for seed := int64(0); seed < 20; seed++ {
		got := newTestEngine(seed).Translate(input)

		stripped := strings.TrimPrefix(got, "Tafadhali ")
		stripped = strings.TrimSuffix(stripped, " sana")
		if stripped != base {
			t.Errorf("seed %d: Translate(%q) = %q, not an embellishment of %q",
				seed, input, got, base)
		}
	}
}

func TestTranslateEmbellishmentDistribution(t *testing.T) {
	const input = "this sentence is long enough"

	e := newTestEngine(42)
	suffixes, prefixes := 0, 0
	const n = 400
	for i := 0; i < n; i++ {
		got := e.Translate(input)
		if strings.HasSuffix(got, " sana") {
			suffixes++
		}
		if strings.HasPrefix(got, "Tafadhali ") {
			prefixes++
		}
	}

	// p=0.5 and p=0.3; allow generous slack.
	if suffixes < n*3/10 || suffixes > n*7/10 {
		t.Errorf("suffix count = %d of %d, want roughly half", suffixes, n)
	}
	if prefixes < n*1/10 || prefixes > n*5/10 {
		t.Errorf("prefix count = %d of %d, want roughly a third", prefixes, n)
	}
}

func TestTranslateShortInputNeverEmbellished(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		got := newTestEngine(seed).Translate("water")
		if got != "Maji" {
			t.Errorf("seed %d: Translate(%q) = %q, want %q", seed, "water", got, "Maji")
		}
	}
}
