// Пакет builder - одноразовый офлайн-сборщик словаря: он разбирает
// исходные файлы MeCab IPA (CSV-лексикон, matrix.def, char.def, unk.def
// в кодировке EUC-JP) и канонизирует их в пять бинарных артефактов,
// которые потребляет токенизатор: term.fst, dict.bin, unk.bin, char.bin,
// matrix.bin.
// Сборщик не создает частичных результатов "по-тихому": любая ошибка
// ввода-вывода или разбора прерывает сборку целиком.
package builder

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/japanese"

	"github.com/steosofficial/kotoba/feature"
	"github.com/steosofficial/kotoba/tokenizer"
)

// maxHomographs - максимум омографов одной поверхностной формы.
// В значении FST под их число отведено 5 бит, поэтому форма с 32 и более
// статьями - ошибка сборки, а не повод молча обрезать словарь.
const maxHomographs = 32

// --- СТРУКТУРЫ ДАННЫХ ---

// Builder накапливает разобранный лексикон и пишет артефакты.
type Builder struct {
	inputDir string
	outDir   string
	log      zerolog.Logger

	// Лексикон, сгруппированный по поверхностной форме. Порядок обхода -
	// лексикографический по ключу: он определяет нумерацию term ID,
	// общую для term.fst и dict.bin.
	termMap map[string][]tokenizer.Term
	featMap map[string][]feature.Feature
}

// SizeReport - размеры записанных артефактов в байтах.
type SizeReport struct {
	CharDef    int
	UnkDict    int
	CostMatrix int
	EntryDict  int
	TermFST    int
}

// Total возвращает суммарный размер всех артефактов.
func (r *SizeReport) Total() int {
	return r.CharDef + r.UnkDict + r.CostMatrix + r.EntryDict + r.TermFST
}

// New создает сборщик для каталога исходных файлов IPA.
func New(inputDir, outDir string, log zerolog.Logger) *Builder {
	return &Builder{
		inputDir: inputDir,
		outDir:   outDir,
		log:      log,
		termMap:  make(map[string][]tokenizer.Term),
		featMap:  make(map[string][]feature.Feature),
	}
}

// --- СБОРКА ---

// Build выполняет полную сборку и возвращает отчет о размерах.
func (b *Builder) Build() (*SizeReport, error) {
	if _, err := os.Stat(b.outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(b.outDir, 0o755); err != nil {
			return nil, fmt.Errorf("ошибка создания выходного каталога: %w", err)
		}
	}

	b.log.Info().Msg("декодирование исходных файлов словаря IPA")
	if err := b.fillEntryMaps(); err != nil {
		return nil, err
	}

	report := &SizeReport{}
	var err error

	b.log.Info().Msg("сборка таблицы символьных категорий")
	if report.CharDef, err = b.buildCharDef(); err != nil {
		return nil, fmt.Errorf("char.def: %w", err)
	}

	b.log.Info().Msg("сборка словаря неизвестных слов")
	if report.UnkDict, err = b.buildUnkDict(); err != nil {
		return nil, fmt.Errorf("unk.def: %w", err)
	}

	b.log.Info().Msg("сборка матрицы стоимостей соединения")
	if report.CostMatrix, err = b.buildCostMatrix(); err != nil {
		return nil, fmt.Errorf("matrix.def: %w", err)
	}

	b.log.Info().Msg("сборка префиксного автомата")
	if report.TermFST, err = b.buildTermFST(); err != nil {
		return nil, fmt.Errorf("term.fst: %w", err)
	}

	b.log.Info().Msg("сборка основного словаря")
	if report.EntryDict, err = b.buildEntryDict(); err != nil {
		return nil, fmt.Errorf("dict.bin: %w", err)
	}

	return report, nil
}

// fillEntryMaps читает все CSV-файлы лексикона и группирует статьи
// по поверхностной форме.
func (b *Builder) fillEntryMaps() error {
	files, err := b.readCSVFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("в каталоге '%s' не найдено ни одного CSV-файла лексикона", b.inputDir)
	}

	for _, file := range files {
		buffer, err := b.readMecabFile(file)
		if err != nil {
			return err
		}

		for _, line := range splitLines(buffer) {
			row, err := parseRow(line)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			b.termMap[row.Surface] = append(b.termMap[row.Surface], row.term())
			b.featMap[row.Surface] = append(b.featMap[row.Surface], row.feature())
		}
	}

	return nil
}

// sortedSurfaces возвращает поверхностные формы в лексикографическом
// порядке - едином для нумерации term ID в автомате и словаре.
func (b *Builder) sortedSurfaces() []string {
	keys := make([]string, 0, len(b.termMap))
	for key := range b.termMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// buildTermFST строит префиксный автомат: ключ - поверхностная форма,
// значение - (первый term ID << 5) | число омографов.
func (b *Builder) buildTermFST() (int, error) {
	root := newTrieNode()
	id := uint64(0)

	for _, key := range b.sortedSurfaces() {
		count := uint64(len(b.termMap[key]))
		if count >= maxHomographs {
			return 0, fmt.Errorf("у формы '%s' %d омографов - в значение FST помещается не более %d", key, count, maxHomographs-1)
		}
		root.insert(key, id<<5|count)
		id += count
	}

	nodes, edges := root.flatten()

	headerSize := int64(unsafe.Sizeof(tokenizer.FSTHeader{}))
	header := tokenizer.FSTHeader{
		Magic:       tokenizer.FSTMagic,
		NodesOffset: headerSize,
		NodesCount:  int64(len(nodes)),
		EdgesOffset: headerSize + int64(len(nodes))*int64(unsafe.Sizeof(tokenizer.FlatNode{})),
		EdgesCount:  int64(len(edges)),
	}

	var buf bytes.Buffer
	if err := writePaddedHeader(&buf, header, headerSize); err != nil {
		return 0, err
	}
	buf.Write(sliceToBytes(nodes))
	buf.Write(sliceToBytes(edges))

	return b.writeOutputFile(tokenizer.FileTermFST, buf.Bytes())
}

// buildEntryDict пишет dict.bin: два параллельных среза в порядке,
// согласованном с нумерацией term ID автомата.
func (b *Builder) buildEntryDict() (int, error) {
	var dict tokenizer.EntryDictionary

	for _, key := range b.sortedSurfaces() {
		dict.Terms = append(dict.Terms, b.termMap[key]...)
		dict.Features = append(dict.Features, b.featMap[key]...)
	}

	return b.writeGzipGob(tokenizer.FileDict, &dict)
}

// buildCostMatrix разбирает matrix.def и пишет matrix.bin.
// Формат matrix.def: заголовок "rows cols", далее строки "right left cost".
func (b *Builder) buildCostMatrix() (int, error) {
	buffer, err := b.readMecabFile("matrix.def")
	if err != nil {
		return 0, err
	}

	lines := splitLines(buffer)
	if len(lines) == 0 {
		return 0, fmt.Errorf("пустой matrix.def")
	}

	headerFields := strings.Fields(lines[0])
	if len(headerFields) < 2 {
		return 0, fmt.Errorf("неверный заголовок matrix.def: '%s'", lines[0])
	}
	rows, err := strconv.Atoi(headerFields[0])
	if err != nil {
		return 0, fmt.Errorf("число строк: %w", err)
	}
	cols, err := strconv.Atoi(headerFields[1])
	if err != nil {
		return 0, fmt.Errorf("число столбцов: %w", err)
	}

	values := make([]int16, rows*cols)

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return 0, fmt.Errorf("неверная строка matrix.def: '%s'", line)
		}
		rightID, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("правый ID: %w", err)
		}
		leftID, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("левый ID: %w", err)
		}
		cost, err := strconv.ParseInt(fields[2], 10, 16)
		if err != nil {
			return 0, fmt.Errorf("стоимость: %w", err)
		}

		// Индексация строго row*cols+col - та же, что при чтении.
		values[rightID*cols+leftID] = int16(cost)
	}

	headerSize := int64(unsafe.Sizeof(tokenizer.MatrixHeader{}))
	header := tokenizer.MatrixHeader{
		Magic:        tokenizer.MatrixMagic,
		Rows:         int64(rows),
		Cols:         int64(cols),
		ValuesOffset: headerSize,
		ValuesCount:  int64(len(values)),
	}

	var buf bytes.Buffer
	if err := writePaddedHeader(&buf, header, headerSize); err != nil {
		return 0, err
	}
	buf.Write(sliceToBytes(values))

	return b.writeOutputFile(tokenizer.FileMatrix, buf.Bytes())
}

// buildCharDef разбирает char.def и пишет char.bin.
// Файл содержит определения категорий ("NAME invoke group length")
// и отображения диапазонов кодовых точек ("0xHHHH[..0xHHHH] CATEGORY...").
func (b *Builder) buildCharDef() (int, error) {
	buffer, err := b.readMecabFile("char.def")
	if err != nil {
		return 0, err
	}

	categoryDefs := make(map[string]tokenizer.CharCategory)
	type boundary struct {
		lower, upper int
		names        []string
	}
	var boundaries []boundary

	for _, line := range splitLines(buffer) {
		if strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "0x") {
			lower, upper, names, err := parseCharMap(line)
			if err != nil {
				return 0, err
			}
			boundaries = append(boundaries, boundary{lower, upper, names})
		} else {
			name, category, err := parseCategory(line)
			if err != nil {
				return 0, err
			}
			categoryDefs[name] = category
		}
	}

	table := tokenizer.CharTable{Map: make([][]tokenizer.CharCategory, 0x10000)}

	for _, bound := range boundaries {
		var categories []tokenizer.CharCategory
		for _, name := range bound.names {
			if category, ok := categoryDefs[name]; ok {
				categories = append(categories, category)
			}
		}
		for index := bound.lower; index <= bound.upper && index < 0x10000; index++ {
			table.Map[index] = categories
		}
	}

	// Дыры диапазонов закрываем категорией DEFAULT: поиск по таблице
	// обязан давать непустой список для любого символа.
	if fallback, ok := categoryDefs["DEFAULT"]; ok {
		defaults := []tokenizer.CharCategory{fallback}
		for index := range table.Map {
			if len(table.Map[index]) == 0 {
				table.Map[index] = defaults
			}
		}
	}

	return b.writeGzipGob(tokenizer.FileCharDef, &table)
}

// buildUnkDict разбирает unk.def и пишет unk.bin. Схема строк та же,
// что у лексикона, но поверхностная форма - имя символьной категории,
// а ID нумеруют строки файла по порядку.
func (b *Builder) buildUnkDict() (int, error) {
	buffer, err := b.readMecabFile("unk.def")
	if err != nil {
		return 0, err
	}

	dict := tokenizer.UnknownDictionary{Terms: make(map[string][]tokenizer.TermEntry)}

	for id, line := range splitLines(buffer) {
		row, err := parseRow(line)
		if err != nil {
			return 0, err
		}

		dict.Terms[row.Surface] = append(dict.Terms[row.Surface], tokenizer.TermEntry{
			ID:   id,
			Term: row.term(),
		})
		dict.Features = append(dict.Features, row.feature())
	}

	return b.writeGzipGob(tokenizer.FileUnkDict, &dict)
}

// --- РАЗБОР CHAR.DEF ---

// parseCategory разбирает определение категории: "NAME invoke group length".
func parseCategory(line string) (string, tokenizer.CharCategory, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", tokenizer.CharCategory{}, fmt.Errorf("неверное определение категории: '%s'", line)
	}

	invoke, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", tokenizer.CharCategory{}, fmt.Errorf("поле invoke: %w", err)
	}
	group, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", tokenizer.CharCategory{}, fmt.Errorf("поле group: %w", err)
	}
	length, err := strconv.Atoi(fields[3])
	if err != nil {
		return "", tokenizer.CharCategory{}, fmt.Errorf("поле length: %w", err)
	}

	category := tokenizer.CharCategory{
		Name:   fields[0],
		Invoke: invoke == 1,
		Group:  group == 1,
		Length: length,
	}

	return fields[0], category, nil
}

// parseCharMap разбирает отображение диапазона: "0xHHHH[..0xHHHH] CATEGORY... [# комментарий]".
func parseCharMap(line string) (int, int, []string, error) {
	fields := strings.Fields(line)
	bounds := strings.SplitN(fields[0], "..", 2)

	lower, err := parseHex(bounds[0])
	if err != nil {
		return 0, 0, nil, fmt.Errorf("нижняя граница: %w", err)
	}
	upper := lower
	if len(bounds) == 2 {
		if upper, err = parseHex(bounds[1]); err != nil {
			return 0, 0, nil, fmt.Errorf("верхняя граница: %w", err)
		}
	}

	var names []string
	for _, field := range fields[1:] {
		if strings.HasPrefix(field, "#") {
			break
		}
		names = append(names, field)
	}

	return lower, upper, names, nil
}

func parseHex(hex string) (int, error) {
	parsed, err := strconv.ParseUint(strings.TrimPrefix(hex, "0x"), 16, 16)
	if err != nil {
		return 0, err
	}
	return int(parsed), nil
}

// --- ВВОД-ВЫВОД ---

// readCSVFiles возвращает имена всех CSV-файлов лексикона в исходном каталоге.
func (b *Builder) readCSVFiles() ([]string, error) {
	entries, err := os.ReadDir(b.inputDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".csv") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// readMecabFile читает исходный файл и перекодирует его из EUC-JP в UTF-8.
func (b *Builder) readMecabFile(filename string) (string, error) {
	path := filepath.Join(b.inputDir, filename)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения файла '%s': %w", path, err)
	}

	decoded, err := japanese.EUCJP.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("ошибка декодирования EUC-JP '%s': %w", path, err)
	}

	return string(decoded), nil
}

// splitLines нарезает буфер на непустые строки.
func splitLines(buffer string) []string {
	var lines []string
	for _, line := range strings.Split(buffer, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// writeOutputFile пишет готовый артефакт и возвращает его размер.
func (b *Builder) writeOutputFile(filename string, data []byte) (int, error) {
	path := filepath.Join(b.outDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("ошибка записи файла '%s': %w", path, err)
	}
	return len(data), nil
}

// writeGzipGob сериализует значение через gob, сжимает gzip и пишет файл.
func (b *Builder) writeGzipGob(filename string, value any) (int, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)

	if err := gob.NewEncoder(gzipWriter).Encode(value); err != nil {
		return 0, fmt.Errorf("ошибка gob-кодирования: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return 0, fmt.Errorf("ошибка закрытия gzip.Writer: %w", err)
	}

	return b.writeOutputFile(filename, buf.Bytes())
}

// writePaddedHeader пишет заголовок упакованно (little-endian) и дополняет
// нулями до unsafe.Sizeof: так же заголовок читает загрузчик токенизатора.
func writePaddedHeader(buf *bytes.Buffer, header any, size int64) error {
	start := buf.Len()
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}
	for int64(buf.Len()-start) < size {
		buf.WriteByte(0)
	}
	return nil
}

// sliceToBytes - обратная к загрузочному bytesToSlice "небезопасная"
// функция: представляет срез структур как срез байт без копирования.
func sliceToBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	header := reflect.SliceHeader{
		Data: uintptr(unsafe.Pointer(&s[0])),
		Len:  len(s) * size,
		Cap:  len(s) * size,
	}
	return *(*[]byte)(unsafe.Pointer(&header))
}
