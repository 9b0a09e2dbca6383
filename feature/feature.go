// feature.go объединяет грамматические теги одной словарной статьи.
package feature

// Feature - полный набор грамматических признаков одной морфемы.
// Отсутствующие признаки (поле "*" в исходном CSV) кодируются нулевыми
// значениями: ConjTypeUnknown/ConjFormUnknown и пустыми строками.
// Нулевое значение всей структуры - валидный признак "прочее",
// им подменяется любая отсутствующая словарная статья.
type Feature struct {
	PartOfSpeech    PartOfSpeech
	SubPartOfSpeech []SubPartOfSpeech
	ConjugationType ConjugationType
	ConjugationForm ConjugationForm
	BaseForm        string // Начальная форма (лемма), если есть.
	Reading         string // Чтение катаканой, если есть.
}

// HasSubPOS сообщает, содержит ли список подкатегорий заданную.
func (f *Feature) HasSubPOS(sub SubPartOfSpeech) bool {
	for _, s := range f.SubPartOfSpeech {
		if s == sub {
			return true
		}
	}
	return false
}
