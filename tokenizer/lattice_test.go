package tokenizer

import (
	"testing"
)

// zeroMatrix создает матрицу соединений из нулей: с ней кратчайший путь
// определяется только стоимостями эмиссии, что делает ожидания теста
// независимыми от настоящего словаря.
func zeroMatrix(size int) *CostMatrix {
	return NewCostMatrix(size, size, make([]int16, size*size))
}

// TestFindPath повторяет разбор фразы 東京都に住む на уровне решетки:
// кандидаты и их стоимости взяты из настоящего словаря IPA.
func TestFindPath(t *testing.T) {
	lattice := newLattice(18)
	matrix := zeroMatrix(16)

	lattice.addNode(latticeNode{termID: 1, start: 0, end: 3, contextID: 5, cost: 6245})   // 東
	lattice.addNode(latticeNode{termID: 2, start: 0, end: 6, contextID: 3, cost: 3003})   // 東京
	lattice.addNode(latticeNode{termID: 3, start: 3, end: 6, contextID: 3, cost: 10791})  // 京
	lattice.addNode(latticeNode{termID: 4, start: 6, end: 9, contextID: 5, cost: 7595})   // 都
	lattice.addNode(latticeNode{termID: 5, start: 6, end: 9, contextID: 6, cost: 9428})   // 都
	lattice.addNode(latticeNode{termID: 6, start: 9, end: 12, contextID: 1, cost: 4303})  // に
	lattice.addNode(latticeNode{termID: 7, start: 9, end: 12, contextID: 2, cost: 11880}) // に
	lattice.addNode(latticeNode{termID: 8, start: 12, end: 18, contextID: 4, cost: 7048}) // 住む

	nodes := lattice.findPath(matrix)

	expected := []int{2, 4, 6, 8} // 東京, 都, に, 住む
	if len(nodes) != len(expected) {
		t.Fatalf("ожидалось %d узлов в пути, получено %d", len(expected), len(nodes))
	}
	for i, termID := range expected {
		if nodes[i].termID != termID {
			t.Errorf("узел %d: ожидался term ID %d, получен %d", i, termID, nodes[i].termID)
		}
	}
}

// TestFindPathOptimality проверяет оптимальность: из двух полных путей
// выбирается путь с меньшей суммарной стоимостью, даже если его первый
// шаг дороже.
func TestFindPathOptimality(t *testing.T) {
	lattice := newLattice(2)
	matrix := zeroMatrix(4)

	lattice.addNode(latticeNode{termID: 1, start: 0, end: 1, contextID: 1, cost: 10}) // дешевый первый шаг
	lattice.addNode(latticeNode{termID: 2, start: 1, end: 2, contextID: 1, cost: 100})
	lattice.addNode(latticeNode{termID: 3, start: 0, end: 2, contextID: 2, cost: 50}) // дорогой, но единственный шаг

	nodes := lattice.findPath(matrix)

	if len(nodes) != 1 || nodes[0].termID != 3 {
		t.Fatalf("ожидался путь из одного узла с term ID 3, получено %v", nodes)
	}
}

// TestFindPathTieBreak: при равной стоимости выигрывает раньше
// добавленный предшественник - сравнение в релаксации строгое.
func TestFindPathTieBreak(t *testing.T) {
	lattice := newLattice(2)
	matrix := zeroMatrix(4)

	lattice.addNode(latticeNode{termID: 1, start: 0, end: 1, contextID: 1, cost: 5})
	lattice.addNode(latticeNode{termID: 2, start: 0, end: 1, contextID: 1, cost: 5})
	lattice.addNode(latticeNode{termID: 3, start: 1, end: 2, contextID: 1, cost: 5})

	nodes := lattice.findPath(matrix)

	if len(nodes) != 2 {
		t.Fatalf("ожидалось 2 узла, получено %d", len(nodes))
	}
	if nodes[0].termID != 1 {
		t.Errorf("при равенстве стоимостей ожидался раньше добавленный узел 1, получен %d", nodes[0].termID)
	}
}

// TestFindPathEmpty: пустая решетка (пустой вход) дает пустой путь.
func TestFindPathEmpty(t *testing.T) {
	lattice := newLattice(0)
	matrix := zeroMatrix(4)

	if nodes := lattice.findPath(matrix); len(nodes) != 0 {
		t.Errorf("для пустого входа ожидался пустой путь, получено %d узлов", len(nodes))
	}
}

// TestFindPathUnreachable: если до EOS нет ни одного пути, возвращается
// пустой список - токенизация остается тотальной.
func TestFindPathUnreachable(t *testing.T) {
	lattice := newLattice(3)
	matrix := zeroMatrix(4)

	// Узел покрывает только [0,1); позиции 1..3 недостижимы.
	lattice.addNode(latticeNode{termID: 1, start: 0, end: 1, contextID: 1, cost: 5})

	if nodes := lattice.findPath(matrix); len(nodes) != 0 {
		t.Errorf("для разорванной решетки ожидался пустой путь, получено %d узлов", len(nodes))
	}
}

// TestHasNodeEndingAt проверяет индекс достижимости позиций.
func TestHasNodeEndingAt(t *testing.T) {
	lattice := newLattice(4)
	lattice.addNode(latticeNode{termID: 1, start: 0, end: 2, contextID: 1, cost: 1})

	if !lattice.hasNodeEndingAt(0) {
		t.Error("в позиции 0 всегда заканчивается BOS")
	}
	if !lattice.hasNodeEndingAt(2) {
		t.Error("в позиции 2 должен заканчиваться добавленный узел")
	}
	if lattice.hasNodeEndingAt(1) {
		t.Error("в позиции 1 не заканчивается ни один узел")
	}
}
