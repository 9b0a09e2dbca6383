// morpheme.go определяет морфему - атомарный результат токенизации -
// и предикаты над ее грамматическими признаками, которыми пользуются
// анализатор словоизменения и группировщик слов.
package tokenizer

import (
	"github.com/steosofficial/kotoba/feature"
)

// Morpheme - минимальная смысловая единица текста с грамматическими
// признаками словарной статьи. Start и End - байтовые смещения в исходной
// строке; Text == input[Start:End].
type Morpheme struct {
	Text            string
	Start           int
	End             int
	PartOfSpeech    feature.PartOfSpeech
	SubPartOfSpeech []feature.SubPartOfSpeech
	ConjugationType feature.ConjugationType
	ConjugationForm feature.ConjugationForm
	BaseForm        string
	Reading         string
}

// newMorpheme собирает морфему из текста, смещений и признаков статьи.
func newMorpheme(text string, start, end int, feat feature.Feature) Morpheme {
	return Morpheme{
		Text:            text,
		Start:           start,
		End:             end,
		PartOfSpeech:    feat.PartOfSpeech,
		SubPartOfSpeech: feat.SubPartOfSpeech,
		ConjugationType: feat.ConjugationType,
		ConjugationForm: feat.ConjugationForm,
		BaseForm:        feat.BaseForm,
		Reading:         feat.Reading,
	}
}

// hasSubPOS проверяет вхождение подкатегории в список морфемы.
func (m *Morpheme) hasSubPOS(sub feature.SubPartOfSpeech) bool {
	for _, s := range m.SubPartOfSpeech {
		if s == sub {
			return true
		}
	}
	return false
}

// IsSymbol - морфема-знак (пунктуация, скобки и т.п.).
func (m *Morpheme) IsSymbol() bool {
	return m.PartOfSpeech == feature.Symbol
}

// HasInflection - морфема принадлежит изменяемой части речи и может
// нести за собой цепочку словоизменительных продолжений.
func (m *Morpheme) HasInflection() bool {
	switch m.PartOfSpeech {
	case feature.Verb, feature.AuxiliaryVerb, feature.Adjective:
		return true
	}
	return false
}

// IsInflection - морфема является словоизменительным продолжением
// предыдущей: вспомогательный глагол, несамостоятельный глагол или
// соединительная частица て/で/ば.
func (m *Morpheme) IsInflection() bool {
	switch {
	case m.PartOfSpeech == feature.AuxiliaryVerb:
		return true
	case m.PartOfSpeech == feature.Verb &&
		(m.hasSubPOS(feature.NonIndependent) || m.hasSubPOS(feature.Suffix)):
		return true
	case (m.Text == "て" || m.Text == "で") && m.hasSubPOS(feature.ConjunctiveParticle):
		return true
	case m.Text == "ば" && m.hasSubPOS(feature.ConjunctiveParticle):
		return true
	}
	return false
}

// IsPronoun - местоимение (существительное с подкатегорией 代名詞).
func (m *Morpheme) IsPronoun() bool {
	return m.PartOfSpeech == feature.Noun && m.hasSubPOS(feature.Pronoun)
}

// IsAdjectivalNoun - основа полупредикативного прилагательного
// (形容動詞語幹 или ナイ形容詞語幹).
func (m *Morpheme) IsAdjectivalNoun() bool {
	return m.PartOfSpeech == feature.Noun &&
		(m.hasSubPOS(feature.AdjectivalNounStem) || m.hasSubPOS(feature.NaiAdjectivalNounStem))
}

// IsCounter - счетное слово (助数詞).
func (m *Morpheme) IsCounter() bool {
	return m.PartOfSpeech == feature.Noun && m.hasSubPOS(feature.Counter)
}

// IsSuffix - суффикс (существительное с подкатегорией 接尾).
func (m *Morpheme) IsSuffix() bool {
	return m.PartOfSpeech == feature.Noun && m.hasSubPOS(feature.Suffix)
}

// IsExpression - устойчивое сочетание (連語).
func (m *Morpheme) IsExpression() bool {
	return m.hasSubPOS(feature.Phrase)
}
