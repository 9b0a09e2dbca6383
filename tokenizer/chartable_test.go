package tokenizer

import (
	"testing"
)

func testCharTable() *CharTable {
	table := &CharTable{Map: make([][]CharCategory, tableSize)}

	numeric := CharCategory{Name: "NUMERIC", Invoke: true, Group: true}
	kanji := CharCategory{Name: "KANJI", Length: 2}
	kanjiNumeric := CharCategory{Name: "KANJINUMERIC", Invoke: true, Group: true}

	for ch := '0'; ch <= '9'; ch++ {
		table.Map[ch] = []CharCategory{numeric}
	}
	for ch := 0x4E00; ch <= 0x9FFF; ch++ {
		table.Map[ch] = []CharCategory{kanji}
	}
	table.Map['一'] = []CharCategory{kanjiNumeric, kanji}
	table.Map[tableSize-1] = []CharCategory{{Name: "DEFAULT", Group: true}}

	return table
}

func TestCharTableLookup(t *testing.T) {
	table := testCharTable()

	// Символ с двумя категориями: порядок сохраняется.
	categories := table.Lookup('一')
	if len(categories) != 2 {
		t.Fatalf("для 一 ожидалось 2 категории, получено %d", len(categories))
	}
	if categories[0].Name != "KANJINUMERIC" || !categories[0].Invoke || !categories[0].Group {
		t.Errorf("первая категория 一: ожидалась KANJINUMERIC(invoke,group), получена %+v", categories[0])
	}
	if categories[1].Name != "KANJI" || categories[1].Invoke || categories[1].Group || categories[1].Length != 2 {
		t.Errorf("вторая категория 一: ожидалась KANJI(!invoke,!group,2), получена %+v", categories[1])
	}

	categories = table.Lookup('1')
	if len(categories) != 1 || categories[0].Name != "NUMERIC" {
		t.Errorf("для 1 ожидалась одна категория NUMERIC, получено %+v", categories)
	}
}

// TestCharTableLookupOutsideBMP: символы за пределами BMP отображаются
// в ячейку 0xFFFF.
func TestCharTableLookupOutsideBMP(t *testing.T) {
	table := testCharTable()

	categories := table.Lookup('\U0001F600')
	if len(categories) != 1 || categories[0].Name != "DEFAULT" {
		t.Errorf("для символа вне BMP ожидалась категория из ячейки 0xFFFF, получено %+v", categories)
	}
}

// TestCharTableLookupFallback: дыра в таблице не ломает поиск -
// возвращается запасной список с DEFAULT.
func TestCharTableLookupFallback(t *testing.T) {
	table := &CharTable{Map: make([][]CharCategory, tableSize)}

	categories := table.Lookup('あ')
	if len(categories) == 0 {
		t.Fatal("поиск по таблице обязан быть тотальным")
	}
	if categories[0].Name != "DEFAULT" {
		t.Errorf("ожидалась запасная категория DEFAULT, получена %+v", categories[0])
	}
}

// TestContainsCategory: сравнение категорий структурное - одинаковое имя
// с разными флагами вхождением не считается.
func TestContainsCategory(t *testing.T) {
	kanji := CharCategory{Name: "KANJI", Length: 2}
	list := []CharCategory{kanji}

	if !containsCategory(list, kanji) {
		t.Error("идентичная запись должна находиться в списке")
	}
	if containsCategory(list, CharCategory{Name: "KANJI"}) {
		t.Error("запись с тем же именем, но другими флагами не должна находиться")
	}
}
