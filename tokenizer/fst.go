// fst.go реализует поиск по префиксному автомату поверх "плоского"
// представления графа (артефакт term.fst). Граф детерминированный и
// ацикличный; ключи - поверхностные формы словаря в байтах UTF-8.
// Вместо указателей узлы и ребра хранятся в двух глобальных массивах,
// которые после mmap читаются без копирования.
package tokenizer

import (
	"sort"
)

// --- СТРУКТУРЫ ДАННЫХ ---

// FlatNode - "плоское" представление узла графа.
// Ребра узла лежат в глобальном массиве ребер непрерывным блоком:
// мы знаем, где он начинается (EdgesIdx) и какой он длины (EdgesLen).
type FlatNode struct {
	Value    uint64 // Полезная нагрузка финального узла (см. декодирование ниже).
	EdgesIdx uint32 // Индекс начала блока ребер в глобальном массиве.
	EdgesLen uint16 // Длина блока.
	Final    bool   // Является ли узел концом какого-либо ключа.
}

// FlatEdge - "плоское" представление ребра графа.
type FlatEdge struct {
	Char   byte   // Байт на ребре.
	NodeID uint32 // ID дочернего узла.
}

// PrefixMatch - один найденный ключ-префикс: его длина в байтах и term ID.
type PrefixMatch struct {
	Length int
	ID     int
}

// FSTSearcher - поисковик по префиксам. После конструирования неизменяем
// и безопасен для конкурентного использования.
type FSTSearcher struct {
	nodes []FlatNode
	edges []FlatEdge
}

// NewFSTSearcher создает поисковик поверх готовых массивов узлов и ребер.
// Узел с индексом 0 считается корнем.
func NewFSTSearcher(nodes []FlatNode, edges []FlatEdge) *FSTSearcher {
	return &FSTSearcher{nodes: nodes, edges: edges}
}

// --- ПОИСК ---

// GetFromPrefix возвращает пару (длина, term ID) для КАЖДОГО ключа словаря,
// являющегося префиксом входа, включая перекрывающиеся ключи
// (например, и 東, и 東京). Результаты идут в порядке возрастания длины.
//
// В финальном узле хранится 64-битное значение value = (startID << 5) | count:
// нижние 5 бит - число омографов с этой поверхностной формой, остальные -
// первый из их подряд идущих term ID. Сборщик гарантирует count < 32.
func (f *FSTSearcher) GetFromPrefix(input string) []PrefixMatch {
	var results []PrefixMatch
	nodeIndex := uint32(0)
	length := 0

	for i := 0; i < len(input); i++ {
		childIndex, found := f.findChild(nodeIndex, input[i])
		if !found {
			break
		}

		nodeIndex = childIndex
		length++

		if node := &f.nodes[nodeIndex]; node.Final {
			count := int(node.Value & 0b11111)
			start := int(node.Value >> 5)

			for id := start; id < start+count; id++ {
				results = append(results, PrefixMatch{Length: length, ID: id})
			}
		}
	}

	return results
}

// findChild ищет дочерний узел по байту. Ребра каждого узла отсортированы
// по значению байта, поэтому используется бинарный поиск по "окну" ребер.
func (f *FSTSearcher) findChild(nodeIndex uint32, char byte) (uint32, bool) {
	node := &f.nodes[nodeIndex]
	if node.EdgesLen == 0 {
		return 0, false
	}

	edgesStart, edgesEnd := node.EdgesIdx, node.EdgesIdx+uint32(node.EdgesLen)
	searchSlice := f.edges[edgesStart:edgesEnd]

	i := sort.Search(len(searchSlice), func(i int) bool { return searchSlice[i].Char >= char })
	if i < len(searchSlice) && searchSlice[i].Char == char {
		return searchSlice[i].NodeID, true
	}

	return 0, false
}
