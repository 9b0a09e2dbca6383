// dict.go определяет словарные структуры, которые загружаются из артефактов
// dict.bin и unk.bin. Обе структуры сериализуются через gob (см. artifact.go)
// и после загрузки неизменяемы.
package tokenizer

import (
	"github.com/steosofficial/kotoba/feature"
)

// --- СТРУКТУРЫ ДАННЫХ ---

// Term - словарная статья: якорь биграммного контекста и стоимость эмиссии.
// В исходном словаре IPA левый и правый контекстные ID совпадают,
// поэтому храним один.
type Term struct {
	ContextID uint16
	Cost      int16
}

// TermEntry - пара (ID, Term) для словаря неизвестных слов.
// ID нумерует статьи unk.def в порядке строк файла; это пространство
// идентификаторов не пересекается с ID основного словаря - узлы решетки
// различают их флагом unknown.
type TermEntry struct {
	ID   int
	Term Term
}

// EntryDictionary - основной словарь: два параллельных среза, индексируемых
// одним и тем же term ID. Порядок задается лексикографической сортировкой
// поверхностных форм при сборке (см. пакет builder), и на него же опирается
// кодирование значений в term.fst.
type EntryDictionary struct {
	Terms    []Term
	Features []feature.Feature
}

// GetTerm возвращает статью по ID. Второе значение - false для ID вне диапазона.
func (d *EntryDictionary) GetTerm(id int) (Term, bool) {
	if id < 0 || id >= len(d.Terms) {
		return Term{}, false
	}
	return d.Terms[id], true
}

// GetFeature возвращает признаки статьи по ID. Для ID вне диапазона
// возвращается нулевой Feature (часть речи "прочее"): поиск тотален.
func (d *EntryDictionary) GetFeature(id int) feature.Feature {
	if id < 0 || id >= len(d.Features) {
		return feature.Feature{}
	}
	return d.Features[id]
}

// UnknownDictionary - словарь неизвестных слов: статьи unk.def,
// сгруппированные по имени символьной категории, плюс параллельный
// вектор признаков, индексируемый unk term ID.
type UnknownDictionary struct {
	Terms    map[string][]TermEntry
	Features []feature.Feature
}

// GetTerms возвращает статьи для категории. Для неизвестной категории - nil.
func (d *UnknownDictionary) GetTerms(category string) []TermEntry {
	return d.Terms[category]
}

// GetFeature возвращает признаки по unk term ID; вне диапазона - нулевой Feature.
func (d *UnknownDictionary) GetFeature(id int) feature.Feature {
	if id < 0 || id >= len(d.Features) {
		return feature.Feature{}
	}
	return d.Features[id]
}
