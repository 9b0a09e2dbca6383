// trie.go строит префиксный автомат по отсортированным ключам словаря
// и "уплощает" его в два массива (узлы и ребра) для записи в term.fst.
// Рекурсивное представление с картами живет только во время сборки;
// на диск попадает плоская форма, которую токенизатор читает без
// копирования через mmap.
package builder

import (
	"sort"

	"github.com/steosofficial/kotoba/tokenizer"
)

// trieNode - рекурсивное представление узла во время сборки.
type trieNode struct {
	children map[byte]*trieNode
	value    uint64
	final    bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

// insert добавляет ключ с 64-битным значением, создавая недостающие узлы.
func (n *trieNode) insert(key string, value uint64) {
	current := n
	for i := 0; i < len(key); i++ {
		char := key[i]
		child, ok := current.children[char]
		if !ok {
			child = newTrieNode()
			current.children[char] = child
		}
		current = child
	}
	current.final = true
	current.value = value
}

// flatten превращает дерево в плоские массивы. Обход в ширину: узлы
// нумеруются в порядке постановки в очередь (корень получает ID 0),
// ребра каждого узла лежат в глобальном массиве непрерывным блоком
// и отсортированы по байту - на это опирается бинарный поиск при чтении.
func (n *trieNode) flatten() ([]tokenizer.FlatNode, []tokenizer.FlatEdge) {
	var flatNodes []tokenizer.FlatNode
	var flatEdges []tokenizer.FlatEdge

	queue := []*trieNode{n}
	nextID := uint32(1)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		chars := make([]int, 0, len(node.children))
		for char := range node.children {
			chars = append(chars, int(char))
		}
		sort.Ints(chars)

		flat := tokenizer.FlatNode{
			Value:    node.value,
			EdgesIdx: uint32(len(flatEdges)),
			EdgesLen: uint16(len(chars)),
			Final:    node.final,
		}
		flatNodes = append(flatNodes, flat)

		for _, char := range chars {
			flatEdges = append(flatEdges, tokenizer.FlatEdge{
				Char:   byte(char),
				NodeID: nextID,
			})
			queue = append(queue, node.children[byte(char)])
			nextID++
		}
	}

	return flatNodes, flatEdges
}
