// chartable.go определяет таблицу символьных категорий (артефакт char.bin).
// Таблица управляет генерацией кандидатов для неизвестных слов: по символу
// она выдает упорядоченный список категорий с флагами invoke/group.
package tokenizer

// CharCategory - одна символьная категория из char.def.
// invoke=true: кандидаты категории добавляются, даже если по этой позиции
// уже найдено словарное слово. group=true: один неизвестный кандидат жадно
// растягивается на все подряд идущие символы той же категории.
// Length читается из char.def и сохраняется в артефакте, но алгоритмом
// генерации не используется: для всех категорий стандартного IPA-словаря
// достаточно флага group.
type CharCategory struct {
	Name   string
	Invoke bool
	Group  bool
	Length int
}

// CharTable - плотная таблица длины 0x10000: кодовая точка -> список категорий.
// Символы за пределами BMP отображаются в ячейку 0xFFFF.
type CharTable struct {
	Map [][]CharCategory
}

// tableSize - размер таблицы: весь BMP.
const tableSize = 0x10000

// defaultCategories - запасной список на случай дыры в артефакте:
// поиск по таблице обязан быть тотальным, любой символ дает хотя бы DEFAULT.
var defaultCategories = []CharCategory{{Name: "DEFAULT", Group: true}}

// Lookup возвращает список категорий для символа. Никогда не возвращает
// пустой список.
func (t *CharTable) Lookup(ch rune) []CharCategory {
	index := int(ch)
	if index < 0 || index >= tableSize {
		index = tableSize - 1
	}
	if index >= len(t.Map) {
		return defaultCategories
	}
	if categories := t.Map[index]; len(categories) > 0 {
		return categories
	}
	return defaultCategories
}

// containsCategory проверяет вхождение категории в список.
// Сравнение - структурное равенство всей записи, как в исходной реализации:
// категории с одинаковым именем, но разными флагами считаются разными.
func containsCategory(categories []CharCategory, category CharCategory) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
