package feature

import (
	"testing"
)

// TestPartOfSpeechRoundTrip: каждая часть речи восстанавливается из своей
// японской строковой формы.
func TestPartOfSpeechRoundTrip(t *testing.T) {
	for pos := range posStrings {
		if got := ParsePartOfSpeech(pos.String()); got != pos {
			t.Errorf("часть речи '%s': ожидалось %d, получено %d", pos.String(), pos, got)
		}
	}
}

// TestParsePartOfSpeechTotal: разбор тотален - мусор и пустая строка
// отображаются в "прочее".
func TestParsePartOfSpeechTotal(t *testing.T) {
	for _, s := range []string{"", "*", "謎"} {
		if got := ParsePartOfSpeech(s); got != Other {
			t.Errorf("для '%s' ожидалось Other, получено %v", s, got)
		}
	}
	if got := ParseSubPartOfSpeech("謎"); got != SubOther {
		t.Errorf("для '謎' ожидалось SubOther, получено %v", got)
	}
	if got := ParseConjugationType("謎"); got != ConjTypeUnknown {
		t.Errorf("для '謎' ожидалось ConjTypeUnknown, получено %v", got)
	}
	if got := ParseConjugationForm("謎"); got != ConjFormUnknown {
		t.Errorf("для '謎' ожидалось ConjFormUnknown, получено %v", got)
	}
}

// TestSubPartOfSpeechRoundTrip: подкатегории так же обратимы.
func TestSubPartOfSpeechRoundTrip(t *testing.T) {
	for sub := range subPosStrings {
		if got := ParseSubPartOfSpeech(sub.String()); got != sub {
			t.Errorf("подкатегория '%s': ожидалось %d, получено %d", sub.String(), sub, got)
		}
	}
}

// TestConjugationRoundTrip: типы и формы спряжения обратимы.
func TestConjugationRoundTrip(t *testing.T) {
	for ct := range conjTypeStrings {
		if got := ParseConjugationType(ct.String()); got != ct {
			t.Errorf("тип спряжения '%s': ожидалось %d, получено %d", ct.String(), ct, got)
		}
	}
	for cf := range conjFormStrings {
		if got := ParseConjugationForm(cf.String()); got != cf {
			t.Errorf("форма спряжения '%s': ожидалось %d, получено %d", cf.String(), cf, got)
		}
	}
}

// TestIsImperative: повелительными считаются ровно четыре формы.
func TestIsImperative(t *testing.T) {
	imperatives := []ConjugationForm{ImperativeE, ImperativeI, ImperativeYo, ImperativeRo}
	for _, form := range imperatives {
		if !form.IsImperative() {
			t.Errorf("форма %v должна быть повелительной", form)
		}
	}
	for _, form := range []ConjugationForm{BasicForm, HypotheticalForm, ConjFormUnknown} {
		if form.IsImperative() {
			t.Errorf("форма %v не должна быть повелительной", form)
		}
	}
}

// TestHasSubPOS: поиск подкатегории в признаке.
func TestHasSubPOS(t *testing.T) {
	feat := Feature{
		PartOfSpeech:    Noun,
		SubPartOfSpeech: []SubPartOfSpeech{Suffix, Counter},
	}

	if !feat.HasSubPOS(Counter) {
		t.Error("подкатегория 助数詞 должна находиться")
	}
	if feat.HasSubPOS(Pronoun) {
		t.Error("подкатегория 代名詞 не должна находиться")
	}
}
