package types

// ArcanaType splits the deck into majors and minors.
type ArcanaType string

const (
	ArcanaMajor ArcanaType = "major"
	ArcanaMinor ArcanaType = "minor"
)

func (a ArcanaType) Valid() bool {
	return a == ArcanaMajor || a == ArcanaMinor
}

// Suit is the minor-arcana suit.
type Suit string

const (
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitWands     Suit = "wands"
	SuitPentacles Suit = "pentacles"
)

func (s Suit) Valid() bool {
	switch s {
	case SuitCups, SuitSwords, SuitWands, SuitPentacles:
		return true
	}
	return false
}

// Card is a catalog entry; Names and Slugs are keyed by locale.
type Card struct {
	ID     int               `json:"id"`
	Arcana ArcanaType        `json:"arcanaType"`
	Suit   Suit              `json:"suit,omitempty"`
	Number int               `json:"number"`
	Name   string            `json:"name"`
	Names  map[Locale]string `json:"names"`
	Slugs  map[Locale]string `json:"slugs"`
}

// LocalizedName returns the card name in the given locale, falling back to
// the canonical English name.
func (c *Card) LocalizedName(locale Locale) string {
	if n, ok := c.Names[locale]; ok && n != "" {
		return n
	}
	return c.Name
}
