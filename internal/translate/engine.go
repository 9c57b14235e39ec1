// Package translate implements the heuristic English→Swahili engine: a fixed
// phrase table consulted per word token by substring match, plus a randomized
// embellishment step. It is a translation simulation, not a translator.
package translate

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

// phrase is one bilingual mapping entry. The table is a slice because the
// match rule takes the first hit in declared order.
type phrase struct {
	english string
	swahili string
}

var phrases = []phrase{
	{"hello", "Jambo"},
	{"good morning", "Habari ya asubuhi"},
	{"good afternoon", "Habari ya mchana"},
	{"good evening", "Habari ya jioni"},
	{"how are you", "Habari yako"},
	{"thank you", "Asante"},
	{"welcome", "Karibu"},
	{"goodbye", "Kwaheri"},
	{"please", "Tafadhali"},
	{"sorry", "Samahani"},
	{"yes", "Ndiyo"},
	{"no", "Hapana"},
	{"what is your name", "Jina lako ni nani"},
	{"my name is", "Jina langu ni"},
	{"i love you", "Nakupenda"},
	{"today", "Leo"},
	{"tomorrow", "Kesho"},
	{"yesterday", "Jana"},
	{"water", "Maji"},
	{"food", "Chakula"},
	{"friend", "Rafiki"},
	{"school", "Shule"},
	{"work", "Kazi"},
	{"home", "Nyumbani"},
}

// Inputs longer than this pick up the randomized embellishments.
const embellishLength = 10

const (
	suffixProbability = 0.5
	prefixProbability = 0.3
)

// Engine translates English text to an approximate Swahili rendering.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine using the given random source. A nil source
// gets a time-seeded one; tests pass a fixed seed for determinism.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Translate lower-cases the input, substitutes each space-separated token via
// the phrase table, and embellishes longer inputs. Pure string logic; the
// caller is responsible for latency modeling and the store append.
func (e *Engine) Translate(english string) string {
	words := strings.Split(strings.ToLower(english), " ")

	translated := make([]string, len(words))
	for i, word := range words {
		translated[i] = translateWord(word)
	}
	result := strings.Join(translated, " ")

	if utf8.RuneCountInString(english) > embellishLength {
		if e.rng.Float64() < suffixProbability {
			result += " sana"
		}
		if e.rng.Float64() < prefixProbability {
			result = "Tafadhali " + result
		}
	}
	return result
}

// translateWord returns the Swahili side of the first table entry whose
// English side contains the token or is contained in it, or the token itself.
func translateWord(word string) string {
	for _, p := range phrases {
		if strings.Contains(p.english, word) || strings.Contains(word, p.english) {
			return p.swahili
		}
	}
	return word
}
