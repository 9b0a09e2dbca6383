// row.go разбирает одну строку лексикона MeCab IPA.
// Формат - 13 полей через запятую: поверхностная форма, левый и правый
// контекстные ID, стоимость, часть речи, до трех подкатегорий, тип и форма
// спряжения, начальная форма, чтение, произношение. Отсутствующее поле
// кодируется звездочкой.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steosofficial/kotoba/feature"
	"github.com/steosofficial/kotoba/tokenizer"
)

// Row - разобранная строка CSV-лексикона (или unk.def: схема та же,
// только поверхностная форма - имя символьной категории).
type Row struct {
	Surface         string
	LeftID          uint16
	RightID         uint16
	Cost            int16
	PartOfSpeech    string
	SubPartOfSpeech [3]string
	ConjugationType string
	ConjugationForm string
	BaseForm        string
	Reading         string
	Pronunciation   string
}

// parseRow разбирает строку лексикона. Ошибка возможна на строке короче
// пяти полей и на числовых полях: все строковые поля принимаются как есть.
func parseRow(line string) (Row, error) {
	values := strings.Split(line, ",")
	if len(values) < 5 {
		return Row{}, fmt.Errorf("слишком мало полей в строке '%s'", line)
	}

	leftID, err := strconv.ParseUint(values[1], 10, 16)
	if err != nil {
		return Row{}, fmt.Errorf("левый контекстный ID: %w", err)
	}
	rightID, err := strconv.ParseUint(values[2], 10, 16)
	if err != nil {
		return Row{}, fmt.Errorf("правый контекстный ID: %w", err)
	}
	cost, err := strconv.ParseInt(values[3], 10, 16)
	if err != nil {
		return Row{}, fmt.Errorf("стоимость: %w", err)
	}

	// Необязательное поле: звездочка и пустая строка означают отсутствие.
	optional := func(idx int) string {
		if idx >= len(values) || values[idx] == "*" || values[idx] == "" {
			return ""
		}
		return values[idx]
	}

	return Row{
		Surface:      values[0],
		LeftID:       uint16(leftID),
		RightID:      uint16(rightID),
		Cost:         int16(cost),
		PartOfSpeech: values[4],
		SubPartOfSpeech: [3]string{
			optional(5),
			optional(6),
			optional(7),
		},
		ConjugationType: optional(8),
		ConjugationForm: optional(9),
		BaseForm:        optional(10),
		Reading:         optional(11),
		Pronunciation:   optional(12),
	}, nil
}

// term собирает словарную статью из строки.
// В словаре IPA левый и правый контекстные ID всегда совпадают,
// поэтому статья хранит один ID.
func (r *Row) term() tokenizer.Term {
	return tokenizer.Term{ContextID: r.LeftID, Cost: r.Cost}
}

// feature собирает грамматические признаки из строки. Разбор тегов тотален:
// незнакомая японская строка отображается в вариант "прочее"/"неизвестно".
func (r *Row) feature() feature.Feature {
	var subPOS []feature.SubPartOfSpeech
	for _, s := range r.SubPartOfSpeech {
		if s != "" {
			subPOS = append(subPOS, feature.ParseSubPartOfSpeech(s))
		}
	}

	feat := feature.Feature{
		PartOfSpeech:    feature.ParsePartOfSpeech(r.PartOfSpeech),
		SubPartOfSpeech: subPOS,
		BaseForm:        r.BaseForm,
		Reading:         r.Reading,
	}
	if r.ConjugationType != "" {
		feat.ConjugationType = feature.ParseConjugationType(r.ConjugationType)
	}
	if r.ConjugationForm != "" {
		feat.ConjugationForm = feature.ParseConjugationForm(r.ConjugationForm)
	}

	return feat
}
