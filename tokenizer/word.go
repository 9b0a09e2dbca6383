// word.go собирает морфемы в слова: голова плюс ее словоизменительные
// продолжения. Класс слова выводится из головной морфемы.
package tokenizer

import (
	"strings"

	"github.com/steosofficial/kotoba/feature"
)

// --- КЛАСС СЛОВА ---

// WordClass - закрытое перечисление классов слов.
type WordClass int

const (
	Unclassified WordClass = iota
	Noun
	PreNoun
	Pronoun
	Particle
	Verb
	AuxiliaryVerb
	Adverb
	Adjective
	Prefix
	Suffix
	Counter
	Conjunction
	Filler
	Interjection
	Expression
)

var wordClassNames = map[WordClass]string{
	Noun:          "Noun",
	PreNoun:       "Pre-noun",
	Pronoun:       "Pronoun",
	Particle:      "Particle",
	Verb:          "Verb",
	AuxiliaryVerb: "Auxiliary verb",
	Adverb:        "Adverb",
	Adjective:     "Adjective",
	Prefix:        "Prefix",
	Suffix:        "Suffix",
	Counter:       "Counter",
	Conjunction:   "Conjunction",
	Filler:        "Filler",
	Interjection:  "Interjection",
	Expression:    "Expression",
	Unclassified:  "Unclassified",
}

func (c WordClass) String() string {
	if s, ok := wordClassNames[c]; ok {
		return s
	}
	return wordClassNames[Unclassified]
}

// wordClassFromPOS - отображение части речи головы в класс слова,
// когда ни одно из специальных правил не сработало.
func wordClassFromPOS(pos feature.PartOfSpeech) WordClass {
	switch pos {
	case feature.Noun:
		return Noun
	case feature.Verb:
		return Verb
	case feature.AuxiliaryVerb:
		return AuxiliaryVerb
	case feature.Adverb:
		return Adverb
	case feature.Adjective:
		return Adjective
	case feature.Adnominal:
		return PreNoun
	case feature.Particle:
		return Particle
	case feature.Conjunction:
		return Conjunction
	case feature.Prefix:
		return Prefix
	case feature.Filler:
		return Filler
	case feature.Interjection:
		return Interjection
	}
	return Unclassified
}

// wordClassFromMorpheme выводит класс слова из головной морфемы.
// Каскад специальных правил важнее общего отображения части речи:
// местоимения, основы полупредикативных прилагательных, счетные слова,
// суффиксы и устойчивые сочетания размечены в IPA подкатегориями.
func wordClassFromMorpheme(head *Morpheme) WordClass {
	switch {
	case head.IsPronoun():
		return Pronoun
	case head.IsAdjectivalNoun():
		return Adjective
	case head.IsCounter():
		return Counter
	case head.IsSuffix():
		return Suffix
	case head.IsExpression():
		return Expression
	}
	return wordClassFromPOS(head.PartOfSpeech)
}

// --- СЛОВО ---

// Word - головная морфема вместе со словоизменительными продолжениями.
// Text - конкатенация текстов морфем; BaseForm - начальная форма головы
// (или ее текст, если начальной формы в словаре нет).
type Word struct {
	Text        string
	Start       int
	End         int
	BaseForm    string
	Class       WordClass
	Morphemes   []Morpheme
	Inflections []Inflection
}

// newWord собирает слово из непустой группы морфем.
func newWord(morphemes []Morpheme) Word {
	head := &morphemes[0]

	var text strings.Builder
	for i := range morphemes {
		text.WriteString(morphemes[i].Text)
	}

	baseForm := head.BaseForm
	if baseForm == "" {
		baseForm = head.Text
	}

	return Word{
		Text:        text.String(),
		Start:       head.Start,
		End:         morphemes[len(morphemes)-1].End,
		BaseForm:    baseForm,
		Class:       wordClassFromMorpheme(head),
		Morphemes:   morphemes,
		Inflections: InflectionsFromMorphemes(morphemes),
	}
}

// --- ПРЕДИКАТЫ ---

func (w *Word) IsNoun() bool          { return w.Class == Noun }
func (w *Word) IsPronoun() bool       { return w.Class == Pronoun }
func (w *Word) IsAdnominal() bool     { return w.Class == PreNoun }
func (w *Word) IsParticle() bool      { return w.Class == Particle }
func (w *Word) IsVerb() bool          { return w.Class == Verb }
func (w *Word) IsAdverb() bool        { return w.Class == Adverb }
func (w *Word) IsAuxiliaryVerb() bool { return w.Class == AuxiliaryVerb }
func (w *Word) IsAdjective() bool     { return w.Class == Adjective }
func (w *Word) IsPrefix() bool        { return w.Class == Prefix }
func (w *Word) IsSuffix() bool        { return w.Class == Suffix }
func (w *Word) IsCounter() bool       { return w.Class == Counter }
func (w *Word) IsFiller() bool        { return w.Class == Filler }
func (w *Word) IsInterjection() bool  { return w.Class == Interjection }
func (w *Word) IsConjunction() bool   { return w.Class == Conjunction }
func (w *Word) IsExpression() bool    { return w.Class == Expression }

// HasInflections сообщает, несет ли слово хотя бы одну метку словоизменения.
func (w *Word) HasInflections() bool { return len(w.Inflections) > 0 }
