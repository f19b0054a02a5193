// Package vocabulary holds the word lists submissions draw their text from.
package vocabulary

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Default is the built-in mix of French and English tokens.
var Default = []string{
	"Bravo", "Merci", "Super", "Génial", "Top", "Wow", "Incroyable", "Respect", "Ouf",
	"Excellent", "J'adore", "Tissage", "Lien", "Connexion", "Réseau", "Ensemble",
	"Communauté", "Partage", "Futur", "Innovation", "Tech", "Code", "Design", "Art",
	"Web", "Data", "IA", "Harmonie", "Monde", "Planète", "Inspirant", "Pertinent",
	"Clair", "Complexe", "Puissant", "Poétique", "Logique", "Fluide", "Lumineux",
	"Sombre", "Abstrait", "Concret", "Hop", "Go", "Vite", "Loin", "Ici", "Maintenant",
	"Demain", "Hier", "Bug", "Fix", "Deploy", "Server", "Client", "User",
}

// ErrEmpty is returned when a word list has no usable entries.
var ErrEmpty = errors.New("vocabulary is empty")

// Vocabulary is an immutable list of words.
type Vocabulary struct {
	words []string
}

// New validates words and returns a vocabulary over a copy of them.
func New(words []string) (*Vocabulary, error) {
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	cleaned := make([]string, 0, len(words))
	for i, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			return nil, fmt.Errorf("word %d is blank", i)
		}
		cleaned = append(cleaned, w)
	}
	return &Vocabulary{words: cleaned}, nil
}

// MustDefault returns the built-in vocabulary.
func MustDefault() *Vocabulary {
	v, err := New(Default)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns a copy of the list.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Pick returns one word uniformly at random.
func (v *Vocabulary) Pick(rnd *rand.Rand) string {
	return v.words[rnd.Intn(len(v.words))]
}
