// matrix.go определяет матрицу стоимостей соединения (артефакт matrix.bin).
// Матрица хранится плоско, построчно, и после загрузки ее значения указывают
// прямо в mmap-область - без копирования.
package tokenizer

// CostMatrix - таблица rows x cols стоимостей соединения биграмм.
// Get(r, l) - стоимость перехода от правого контекста r к левому контексту l.
type CostMatrix struct {
	rows   int
	cols   int
	values []int16
}

// NewCostMatrix создает матрицу поверх готового среза значений.
// Срез должен иметь длину rows*cols; владение не передается.
func NewCostMatrix(rows, cols int, values []int16) *CostMatrix {
	return &CostMatrix{rows: rows, cols: cols, values: values}
}

// Get возвращает стоимость соединения. Индексация строго row*cols+col.
func (m *CostMatrix) Get(rightID, leftID uint16) int16 {
	return m.values[int(rightID)*m.cols+int(leftID)]
}
