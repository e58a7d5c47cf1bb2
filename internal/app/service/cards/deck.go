package cards

import (
	"fmt"
	"strings"

	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// The deck is fixed content: 22 majors plus 56 generated minors. Names and
// slugs exist for every supported locale.

type majorEntry struct {
	number int
	en     string
	tr     string
	sr     string
}

var majors = []majorEntry{
	{0, "The Fool", "Deli", "Luda"},
	{1, "The Magician", "Büyücü", "Mag"},
	{2, "The High Priestess", "Azize", "Prvosveštenica"},
	{3, "The Empress", "İmparatoriçe", "Carica"},
	{4, "The Emperor", "İmparator", "Car"},
	{5, "The Hierophant", "Aziz", "Prvosveštenik"},
	{6, "The Lovers", "Aşıklar", "Ljubavnici"},
	{7, "The Chariot", "Savaş Arabası", "Kočija"},
	{8, "Strength", "Güç", "Snaga"},
	{9, "The Hermit", "Ermiş", "Pustinjak"},
	{10, "Wheel of Fortune", "Kader Çarkı", "Točak Sreće"},
	{11, "Justice", "Adalet", "Pravda"},
	{12, "The Hanged Man", "Asılan Adam", "Obešeni"},
	{13, "Death", "Ölüm", "Smrt"},
	{14, "Temperance", "Denge", "Umerenost"},
	{15, "The Devil", "Şeytan", "Đavo"},
	{16, "The Tower", "Kule", "Kula"},
	{17, "The Star", "Yıldız", "Zvezda"},
	{18, "The Moon", "Ay", "Mesec"},
	{19, "The Sun", "Güneş", "Sunce"},
	{20, "Judgement", "Mahkeme", "Sud"},
	{21, "The World", "Dünya", "Svet"},
}

var suitOrder = []types.Suit{types.SuitCups, types.SuitSwords, types.SuitWands, types.SuitPentacles}

var suitNames = map[types.Suit]map[types.Locale]string{
	types.SuitCups:      {types.LocaleEnglish: "Cups", types.LocaleTurkish: "Kupalar", types.LocaleSerbian: "Pehara"},
	types.SuitSwords:    {types.LocaleEnglish: "Swords", types.LocaleTurkish: "Kılıçlar", types.LocaleSerbian: "Mačeva"},
	types.SuitWands:     {types.LocaleEnglish: "Wands", types.LocaleTurkish: "Asalar", types.LocaleSerbian: "Štapova"},
	types.SuitPentacles: {types.LocaleEnglish: "Pentacles", types.LocaleTurkish: "Tılsımlar", types.LocaleSerbian: "Pentakla"},
}

var rankNames = map[types.Locale][]string{
	types.LocaleEnglish: {"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King"},
	types.LocaleTurkish: {"As", "İki", "Üç", "Dört", "Beş", "Altı", "Yedi", "Sekiz", "Dokuz", "On", "Uşak", "Şövalye", "Kraliçe", "Kral"},
	types.LocaleSerbian: {"As", "Dvojka", "Trojka", "Četvorka", "Petica", "Šestica", "Sedmica", "Osmica", "Devetka", "Desetka", "Paž", "Vitez", "Kraljica", "Kralj"},
}

func minorName(locale types.Locale, suit types.Suit, rank int) string {
	rn := rankNames[locale][rank-1]
	sn := suitNames[suit][locale]
	switch locale {
	case types.LocaleTurkish:
		return fmt.Sprintf("%s %s", sn, rn)
	case types.LocaleSerbian:
		return fmt.Sprintf("%s %s", rn, sn)
	default:
		return fmt.Sprintf("%s of %s", rn, sn)
	}
}

var slugReplacer = strings.NewReplacer(
	"ı", "i", "İ", "i", "ş", "s", "Ş", "s", "ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g", "ü", "u", "Ü", "u", "ö", "o", "Ö", "o",
	"č", "c", "Č", "c", "ć", "c", "Ć", "c", "š", "s", "Š", "s",
	"ž", "z", "Ž", "z", "đ", "dj", "Đ", "dj",
	" ", "-",
)

// Slugify folds locale diacritics to ASCII and joins words with dashes.
func Slugify(name string) string {
	return strings.ToLower(slugReplacer.Replace(name))
}

func buildDeck() []*types.Card {
	deck := make([]*types.Card, 0, 78)

	for _, m := range majors {
		names := map[types.Locale]string{
			types.LocaleEnglish: m.en,
			types.LocaleTurkish: m.tr,
			types.LocaleSerbian: m.sr,
		}
		deck = append(deck, &types.Card{
			ID:     m.number,
			Arcana: types.ArcanaMajor,
			Number: m.number,
			Name:   m.en,
			Names:  names,
			Slugs:  slugsFor(names),
		})
	}

	id := len(majors)
	for _, suit := range suitOrder {
		for rank := 1; rank <= 14; rank++ {
			names := map[types.Locale]string{
				types.LocaleEnglish: minorName(types.LocaleEnglish, suit, rank),
				types.LocaleTurkish: minorName(types.LocaleTurkish, suit, rank),
				types.LocaleSerbian: minorName(types.LocaleSerbian, suit, rank),
			}
			deck = append(deck, &types.Card{
				ID:     id,
				Arcana: types.ArcanaMinor,
				Suit:   suit,
				Number: rank,
				Name:   names[types.LocaleEnglish],
				Names:  names,
				Slugs:  slugsFor(names),
			})
			id++
		}
	}
	return deck
}

func slugsFor(names map[types.Locale]string) map[types.Locale]string {
	slugs := make(map[types.Locale]string, len(names))
	for locale, name := range names {
		slugs[locale] = Slugify(name)
	}
	return slugs
}
