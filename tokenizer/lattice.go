// lattice.go реализует решетку кандидатов и поиск кратчайшего пути по ней
// (проход Витерби). Решетка строится заново на каждый вызов токенизации
// и нигде не разделяется между горутинами.
package tokenizer

import (
	"math"
)

// Зарезервированные ID сентинельных узлов.
const (
	bosID = 0 // Начало строки: узел [0,0].
	eosID = 1 // Конец строки: узел [len,len].
)

// noPrev - признак отсутствия предшественника.
const noPrev = -1

// latticeNode - кандидат-морфема над байтовым диапазоном [start, end).
type latticeNode struct {
	termID    int
	unknown   bool // true: termID указывает в словарь неизвестных слов.
	start     int
	end       int
	contextID uint16
	cost      int16 // Стоимость эмиссии.
	totalCost int32 // Минимальная накопленная стоимость пути BOS -> узел.
	prev      int   // ID лучшего предшественника, noPrev до релаксации.
}

// lattice - DAG кандидатов над байтовым диапазоном [0, len] с двумя
// индексами: узлы, начинающиеся и заканчивающиеся в каждой позиции.
type lattice struct {
	nodes    []latticeNode
	startsAt [][]int
	endsAt   [][]int
}

// newLattice создает пустую решетку с сентинелями BOS и EOS.
// У обоих contextID = 0 и нулевая стоимость эмиссии; стоимость пути BOS
// равна нулю - это источник поиска.
func newLattice(length int) *lattice {
	bos := latticeNode{prev: noPrev}
	eos := latticeNode{start: length, end: length, totalCost: math.MaxInt32, prev: noPrev}

	startsAt := make([][]int, length+1)
	endsAt := make([][]int, length+1)
	endsAt[0] = append(endsAt[0], bosID)
	startsAt[length] = append(startsAt[length], eosID)

	return &lattice{
		nodes:    []latticeNode{bos, eos},
		startsAt: startsAt,
		endsAt:   endsAt,
	}
}

// addNode добавляет кандидата и регистрирует его в обоих индексах.
// Узел с end за пределами решетки (возможно для неизвестных спанов у конца
// строки) регистрируется в последней позиции: текст морфемы при
// материализации будет обрезан, но узел останется достижимым для EOS.
func (l *lattice) addNode(node latticeNode) {
	node.totalCost = math.MaxInt32
	node.prev = noPrev

	nodeID := len(l.nodes)
	end := node.end
	if end >= len(l.endsAt) {
		end = len(l.endsAt) - 1
	}

	l.startsAt[node.start] = append(l.startsAt[node.start], nodeID)
	l.endsAt[end] = append(l.endsAt[end], nodeID)
	l.nodes = append(l.nodes, node)
}

// hasNodeEndingAt сообщает, заканчивается ли в позиции хотя бы один узел.
// Позиции без такого узла недостижимы, и кандидатов с них строить не нужно.
func (l *lattice) hasNodeEndingAt(index int) bool {
	return len(l.endsAt[index]) > 0
}

// findPath выполняет проход Витерби и возвращает узлы кратчайшего пути
// BOS -> EOS в прямом порядке, без сентинелей.
//
// Релаксация идет по позициям слева направо: к моменту обработки позиции i
// у всех узлов, заканчивающихся в i, накопленная стоимость уже финальна.
// Сравнение строгое (<), поэтому при равенстве выигрывает раньше
// найденный предшественник - это фиксирует детерминизм результата.
func (l *lattice) findPath(matrix *CostMatrix) []latticeNode {
	for i := 0; i < len(l.startsAt); i++ {
		leftEdges := l.endsAt[i]
		rightEdges := l.startsAt[i]

		for _, currentID := range rightEdges {
			for _, prevID := range leftEdges {
				prevNode := &l.nodes[prevID]
				current := &l.nodes[currentID]
				connectionCost := matrix.Get(prevNode.contextID, current.contextID)
				totalCost := prevNode.totalCost + int32(current.cost) + int32(connectionCost)

				if totalCost < current.totalCost {
					current.totalCost = totalCost
					current.prev = prevID
				}
			}
		}
	}

	return l.buildPath()
}

// buildPath восстанавливает путь по ссылкам prev от EOS к BOS.
// Если путь до EOS не найден (возможно при битом словаре), возвращается
// пустой список: токенизация тотальна. На пустом входе путь BOS -> EOS
// находится, и без сентинелей он тоже пуст.
func (l *lattice) buildPath() []latticeNode {
	var nodes []latticeNode
	prev := l.nodes[eosID].prev

	for prev != noPrev {
		node := l.nodes[prev]
		nodes = append(nodes, node)
		prev = node.prev
	}

	if len(nodes) == 0 {
		return nil
	}

	// Последним добавлен BOS - отбрасываем его и разворачиваем путь.
	nodes = nodes[:len(nodes)-1]
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return nodes
}
