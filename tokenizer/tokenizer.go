// Пакет tokenizer содержит морфологический токенизатор современного
// письменного японского языка на словаре MeCab IPA.
// Токенизация устроена так: по каждой достижимой байтовой позиции входа
// префиксный автомат выдает словарных кандидатов, таблица символьных
// категорий порождает кандидатов для неизвестных слов, все кандидаты
// складываются в решетку, и проход Витерби с матрицей стоимостей
// соединения выбирает из нее кратчайший путь.
// Ключевая особенность загрузки - mmap для Zero-Copy доступа к тяжелым
// артефактам, что минимизирует потребление ОЗУ (см. artifact.go).
package tokenizer

import (
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

// --- СТРУКТУРЫ ДАННЫХ ---

// Tokenizer - основная структура, владеющая пятью артефактами словаря.
// После конструирования все данные неизменяемы, поэтому один экземпляр
// безопасно разделять между горутинами: решетка создается на каждый вызов.
type Tokenizer struct {
	fst       *FSTSearcher
	dict      *EntryDictionary
	unkDict   *UnknownDictionary
	charTable *CharTable
	matrix    *CostMatrix

	// Ссылки на mmap-объекты, чтобы память оставалась доступной,
	// пока жив токенизатор.
	fstMmap    mmap.MMap
	matrixMmap mmap.MMap
}

// extractedTerm - кандидат-морфема, извлеченный по одной позиции входа.
type extractedTerm struct {
	id      int
	unknown bool
	length  int
	value   Term
}

// Close освобождает mmap-области. После Close токенизатор использовать нельзя.
func (t *Tokenizer) Close() error {
	if t.fstMmap != nil {
		if err := t.fstMmap.Unmap(); err != nil {
			return err
		}
		t.fstMmap = nil
	}
	if t.matrixMmap != nil {
		if err := t.matrixMmap.Unmap(); err != nil {
			return err
		}
		t.matrixMmap = nil
	}
	return nil
}

// --- ТОКЕНИЗАЦИЯ ---

// Tokenize разбирает строку на морфемы. Метод тотален: любой вход дает
// (возможно пустой) список, пустой вход - пустой список.
func (t *Tokenizer) Tokenize(input string) []Morpheme {
	textLen := len(input)
	lattice := newLattice(textLen)

	for index := 0; index < textLen; index++ {
		// Позиции, в которых не заканчивается ни один кандидат,
		// недостижимы из BOS - пропускаем их целиком.
		if !lattice.hasNodeEndingAt(index) {
			continue
		}

		substr := input[index:]
		extracted := t.getTermsFromStr(substr)
		found := len(extracted) > 0
		extracted = append(extracted, t.getUnknownTermsFromStr(substr, found)...)

		for _, term := range extracted {
			lattice.addNode(latticeNode{
				termID:    term.id,
				unknown:   term.unknown,
				start:     index,
				end:       index + term.length,
				contextID: term.value.ContextID,
				cost:      term.value.Cost,
			})
		}
	}

	nodes := lattice.findPath(t.matrix)
	var tokens []Morpheme

	for _, node := range nodes {
		// Неизвестный спан мог перешагнуть конец строки - текст и смещение
		// end морфемы обрезаем по длине входа (узел решетки хранит исходный end).
		end := node.end
		if end > textLen {
			end = textLen
		}
		text := input[node.start:end]

		feat := t.dict.GetFeature(node.termID)
		if node.unknown {
			feat = t.unkDict.GetFeature(node.termID)
		}

		tokens = append(tokens, newMorpheme(text, node.start, end, feat))
	}

	return tokens
}

// TokenizeWord разбирает строку на слова: морфемы-знаки отбрасываются,
// словоизменительные продолжения присоединяются к своей основе.
func (t *Tokenizer) TokenizeWord(input string) []Word {
	return GroupWords(t.Tokenize(input))
}

// GroupWords собирает поток морфем в слова. Чистая функция: один проход
// с подглядыванием на одну морфему вперед.
func GroupWords(morphemes []Morpheme) []Word {
	var words []Word

	for i := 0; i < len(morphemes); i++ {
		morpheme := morphemes[i]
		if morpheme.IsSymbol() {
			continue
		}

		group := []Morpheme{morpheme}

		// Изменяемая голова поглощает все непосредственно следующие
		// словоизменительные морфемы.
		if morpheme.HasInflection() {
			for i+1 < len(morphemes) && morphemes[i+1].IsInflection() {
				i++
				group = append(group, morphemes[i])
			}
		}

		words = append(words, newWord(group))
	}

	return words
}

// getTermsFromStr возвращает словарных кандидатов: по одному на каждый
// ключ словаря, являющийся префиксом substr.
func (t *Tokenizer) getTermsFromStr(input string) []extractedTerm {
	matches := t.fst.GetFromPrefix(input)
	var extracted []extractedTerm

	for _, match := range matches {
		if term, ok := t.dict.GetTerm(match.ID); ok {
			extracted = append(extracted, extractedTerm{
				id:     match.ID,
				length: match.Length,
				value:  term,
			})
		}
	}

	return extracted
}

// getUnknownTermsFromStr порождает кандидатов для неизвестных слов по
// символьным категориям первого символа substr.
// found=true означает, что по этой позиции уже найдено словарное слово:
// тогда участвуют только категории с флагом invoke.
func (t *Tokenizer) getUnknownTermsFromStr(input string, found bool) []extractedTerm {
	var unkTerms []extractedTerm

	ch, size := utf8.DecodeRuneInString(input)
	categories := t.charTable.Lookup(ch)
	currentLen := size

	// Курсор по хвосту строки общий для всех категорий: жадное
	// растягивание следующей категории продолжается с того места,
	// где остановилось предыдущее.
	rest := input[size:]

	for i := range categories {
		category := categories[i]

		if found && !category.Invoke {
			continue
		}

		if category.Group {
			// Жадно расширяем спан, пока очередной символ несет
			// эту же категорию (структурное равенство записи).
			for len(rest) > 0 {
				next, nextSize := utf8.DecodeRuneInString(rest)
				if !containsCategory(t.charTable.Lookup(next), category) {
					break
				}
				currentLen += nextSize
				rest = rest[nextSize:]
			}
		}

		for _, entry := range t.unkDict.GetTerms(category.Name) {
			unkTerms = append(unkTerms, extractedTerm{
				id:      entry.ID,
				unknown: true,
				length:  currentLen,
				value:   entry.Term,
			})
		}
	}

	return unkTerms
}

// --- ПАКЕТНАЯ ОБРАБОТКА ---

// chunkSize - размер одного "пакета" входов для воркера.
const chunkSize = 256

// TokenizeBatch разбирает срез независимых строк в конкурентном режиме,
// используя пул воркеров. Результат детерминирован: i-й элемент - разбор
// i-й строки входа.
func (t *Tokenizer) TokenizeBatch(inputs []string) [][]Morpheme {
	results := make([][]Morpheme, len(inputs))

	runBatch(len(inputs), func(index int) {
		results[index] = t.Tokenize(inputs[index])
	})

	return results
}

// TokenizeWordBatch - пакетный вариант TokenizeWord, с теми же гарантиями
// порядка, что и у TokenizeBatch.
func (t *Tokenizer) TokenizeWordBatch(inputs []string) [][]Word {
	results := make([][]Word, len(inputs))

	runBatch(len(inputs), func(index int) {
		results[index] = t.TokenizeWord(inputs[index])
	})

	return results
}

// runBatch нарезает диапазон [0, total) на чанки и раздает их пулу
// воркеров размером в число CPU. Каждый воркер пишет результаты только
// в свои индексы, поэтому синхронизация итогового среза не нужна.
func runBatch(total int, process func(index int)) {
	numWorkers := runtime.NumCPU()

	// Канал для отправки "пакетов" (чанков) в воркеры.
	chunksCh := make(chan [2]int, numWorkers)

	var wg sync.WaitGroup

	// Запускаем воркеры.
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for chunk := range chunksCh {
				for index := chunk[0]; index < chunk[1]; index++ {
					process(index)
				}
			}
		}()
	}

	// Диспетчер: нарезаем вход на чанки и отправляем их воркерам.
	go func() {
		for i := 0; i < total; i += chunkSize {
			end := i + chunkSize
			if end > total {
				end = total
			}
			chunksCh <- [2]int{i, end}
		}
		close(chunksCh) // Закрываем канал, чтобы воркеры завершили работу.
	}()

	wg.Wait()
}
