// inflection.go классифицирует словоизменение по потоку морфем.
// Анализатор - чистая функция: один проход слева направо с подглядыванием
// на одну морфему вперед, без буферизации всей последовательности.
package tokenizer

import (
	"github.com/steosofficial/kotoba/feature"
)

// Inflection - закрытая метка грамматического словоизменения,
// прикрепленного к глаголу, прилагательному или вспомогательному глаголу.
type Inflection int

const (
	Polite Inflection = iota
	Negative
	Past
	Te
	TeIru
	TeKureru
	TeMorau
	TeMiru
	TeOku
	TeIku
	TeKuru
	TeShimau
	Chau
	Volitional
	Imperative
	Tara
	Ba
	PotentialPassive
	Passive
	Causative
	Tai
)

var inflectionNames = map[Inflection]string{
	Polite:           "Polite",
	Negative:         "Negative",
	Past:             "Past",
	Te:               "Te",
	TeIru:            "TeIru",
	TeKureru:         "TeKureru",
	TeMorau:          "TeMorau",
	TeMiru:           "TeMiru",
	TeOku:            "TeOku",
	TeIku:            "TeIku",
	TeKuru:           "TeKuru",
	TeShimau:         "TeShimau",
	Chau:             "Chau",
	Volitional:       "Volitional",
	Imperative:       "Imperative",
	Tara:             "Tara",
	Ba:               "Ba",
	PotentialPassive: "PotentialPassive",
	Passive:          "Passive",
	Causative:        "Causative",
	Tai:              "Tai",
}

func (i Inflection) String() string {
	if s, ok := inflectionNames[i]; ok {
		return s
	}
	return "Unknown"
}

// InflectionsFromMorphemes возвращает метки словоизменения для
// последовательности морфем, в порядке их появления. Одна морфема может
// дать две метки: сначала Imperative (по форме спряжения), затем метку
// по начальной форме.
func InflectionsFromMorphemes(morphemes []Morpheme) []Inflection {
	var inflections []Inflection

	for i := 0; i < len(morphemes); i++ {
		morpheme := &morphemes[i]

		// next - подглядывание на одну морфему вперед, без потребления:
		// она нужна только для выбора разновидности て-формы.
		var next *Morpheme
		if i+1 < len(morphemes) {
			next = &morphemes[i+1]
		}

		if morpheme.ConjugationForm.IsImperative() {
			inflections = append(inflections, Imperative)
		}

		if tag, ok := baseFormTag(morpheme, next); ok {
			inflections = append(inflections, tag)
		}
	}

	return inflections
}

// baseFormTag выбирает метку по начальной форме морфемы.
// Закрытая таблица японской грамматики; неизвестная начальная форма
// не дает метки.
func baseFormTag(morpheme, next *Morpheme) (Inflection, bool) {
	switch morpheme.BaseForm {
	case "ます":
		return Polite, true
	case "ない", "ん":
		return Negative, true
	case "た":
		// た дает Past только в базовой форме; в гипотетической это たら.
		switch morpheme.ConjugationForm {
		case feature.BasicForm:
			return Past, true
		case feature.HypotheticalForm:
			return Tara, true
		}
		return 0, false
	case "て", "で":
		return teTag(next), true
	case "ちゃう":
		return Chau, true
	case "う":
		return Volitional, true
	case "ば":
		return Ba, true
	case "れる":
		return Passive, true
	case "させる":
		return Causative, true
	case "られる":
		return PotentialPassive, true
	case "たい":
		return Tai, true
	}
	return 0, false
}

// teTag уточняет て-форму по начальной форме следующей морфемы
// (ている, ておく, てくれる и т.д.). Без следующей морфемы - просто Te.
func teTag(next *Morpheme) Inflection {
	if next == nil {
		return Te
	}
	switch next.BaseForm {
	case "いる":
		return TeIru
	case "おく":
		return TeOku
	case "くれる":
		return TeKureru
	case "もらう":
		return TeMorau
	case "いく", "行く":
		return TeIku
	case "くる", "来る":
		return TeKuru
	case "みる":
		return TeMiru
	case "しまう":
		return TeShimau
	}
	return Te
}
