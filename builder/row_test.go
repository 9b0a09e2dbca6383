package builder

import (
	"testing"

	"github.com/steosofficial/kotoba/feature"
)

// TestParseRow: разбор строки лексикона с отсутствующими полями.
func TestParseRow(t *testing.T) {
	line := "真,560,560,7716,接頭詞,名詞接続,*,*,*,*,真,マ,"
	row, err := parseRow(line)
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора: %v", err)
	}

	if row.Surface != "真" {
		t.Errorf("поверхностная форма: ожидалось '真', получено '%s'", row.Surface)
	}
	if row.LeftID != 560 || row.RightID != 560 {
		t.Errorf("контекстные ID: ожидалось 560/560, получено %d/%d", row.LeftID, row.RightID)
	}
	if row.Cost != 7716 {
		t.Errorf("стоимость: ожидалось 7716, получено %d", row.Cost)
	}
	if row.PartOfSpeech != "接頭詞" {
		t.Errorf("часть речи: ожидалось '接頭詞', получено '%s'", row.PartOfSpeech)
	}
	if row.SubPartOfSpeech != [3]string{"名詞接続", "", ""} {
		t.Errorf("подкатегории: получено %v", row.SubPartOfSpeech)
	}
	if row.ConjugationType != "" || row.ConjugationForm != "" {
		t.Errorf("спряжение должно отсутствовать, получено '%s'/'%s'", row.ConjugationType, row.ConjugationForm)
	}
	if row.BaseForm != "真" || row.Reading != "マ" {
		t.Errorf("начальная форма/чтение: получено '%s'/'%s'", row.BaseForm, row.Reading)
	}
	if row.Pronunciation != "" {
		t.Errorf("произношение: ожидалось пустое, получено '%s'", row.Pronunciation)
	}
}

// TestParseRowVerb: глагольная статья с типом и формой спряжения.
func TestParseRowVerb(t *testing.T) {
	line := "住む,762,762,7048,動詞,自立,*,*,五段・マ行,基本形,住む,スム,スム"
	row, err := parseRow(line)
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора: %v", err)
	}

	feat := row.feature()
	if feat.PartOfSpeech != feature.Verb {
		t.Errorf("часть речи: ожидался глагол, получено %v", feat.PartOfSpeech)
	}
	if feat.ConjugationType != feature.GodanMaRow {
		t.Errorf("тип спряжения: ожидался 五段・マ行, получено %v", feat.ConjugationType)
	}
	if feat.ConjugationForm != feature.BasicForm {
		t.Errorf("форма спряжения: ожидалась базовая, получено %v", feat.ConjugationForm)
	}
	if feat.BaseForm != "住む" || feat.Reading != "スム" {
		t.Errorf("начальная форма/чтение: получено '%s'/'%s'", feat.BaseForm, feat.Reading)
	}

	term := row.term()
	if term.ContextID != 762 || term.Cost != 7048 {
		t.Errorf("статья: получено %+v", term)
	}
}

// TestParseRowUnknownTags: незнакомые теги не ломают разбор -
// они тотально отображаются в варианты "прочее"/"неизвестно".
func TestParseRowUnknownTags(t *testing.T) {
	line := "ほげ,1,1,100,謎品詞,謎分類,*,*,謎活用,謎形,ほげ,ホゲ,ホゲ"
	row, err := parseRow(line)
	if err != nil {
		t.Fatalf("неожиданная ошибка разбора: %v", err)
	}

	feat := row.feature()
	if feat.PartOfSpeech != feature.Other {
		t.Errorf("ожидалась часть речи 'прочее', получено %v", feat.PartOfSpeech)
	}
	if len(feat.SubPartOfSpeech) != 1 || feat.SubPartOfSpeech[0] != feature.SubOther {
		t.Errorf("ожидалась подкатегория 'прочее', получено %v", feat.SubPartOfSpeech)
	}
	if feat.ConjugationType != feature.ConjTypeUnknown || feat.ConjugationForm != feature.ConjFormUnknown {
		t.Errorf("ожидалось неизвестное спряжение, получено %v/%v", feat.ConjugationType, feat.ConjugationForm)
	}
}

// TestParseRowErrors: слишком короткая строка и числовые поля с мусором
// дают ошибку сборки.
func TestParseRowErrors(t *testing.T) {
	lines := []string{
		"短",
		"真,abc,560,7716,接頭詞",
		"真,560,560,xyz,接頭詞",
	}

	for _, line := range lines {
		if _, err := parseRow(line); err == nil {
			t.Errorf("для строки '%s' ожидалась ошибка", line)
		}
	}
}
