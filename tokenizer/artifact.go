// artifact.go загружает пять бинарных артефактов словаря:
// term.fst, dict.bin, unk.bin, char.bin, matrix.bin.
// Два "тяжелых" и регулярных по форме артефакта (term.fst, matrix.bin)
// отображаются в память через mmap и читаются без копирования: заголовок
// описывает смещения и размеры плоских массивов, поверх которых создаются
// "виртуальные" срезы. Три артефакта с нерегулярной формой (срезы структур,
// карта по строковому ключу) сериализованы gob и сжаты gzip; они целиком
// декодируются в кучу при загрузке.
// Загрузка - единственный этап, на котором токенизатор может вернуть ошибку.
package tokenizer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// --- ПЕРЕМЕННЫЕ ОКРУЖЕНИЯ ---

// EnvDictPath - имя переменной окружения для переопределения пути к каталогу словаря.
const EnvDictPath = "KOTOBA_DICT_PATH"

// --- ФОРМАТ ФАЙЛОВ ---

// Имена файлов артефактов внутри каталога словаря.
const (
	FileTermFST = "term.fst"
	FileDict    = "dict.bin"
	FileUnkDict = "unk.bin"
	FileCharDef = "char.bin"
	FileMatrix  = "matrix.bin"
	dictDirName = "dict"
)

// FSTHeader - заголовок файла term.fst, "карта" для Zero-Copy загрузки.
// Записывается сборщиком упакованно (binary.Write, little-endian) с
// выравниванием до unsafe.Sizeof - обе стороны обязаны считать размер
// заголовка одинаково.
type FSTHeader struct {
	Magic       [4]byte // Сигнатура "KFST" для проверки корректности файла.
	NodesOffset int64   // Смещение до массива узлов (в байтах).
	NodesCount  int64   // Количество узлов.
	EdgesOffset int64   // Смещение до массива ребер.
	EdgesCount  int64   // Количество ребер.
}

// MatrixHeader - заголовок файла matrix.bin.
type MatrixHeader struct {
	Magic        [4]byte // Сигнатура "KMTX".
	Rows         int64   // Число строк (правых контекстов).
	Cols         int64   // Число столбцов (левых контекстов).
	ValuesOffset int64   // Смещение до плоского массива значений.
	ValuesCount  int64   // Количество значений (= Rows*Cols).
}

// Сигнатуры артефактов.
var (
	FSTMagic    = [4]byte{'K', 'F', 'S', 'T'}
	MatrixMagic = [4]byte{'K', 'M', 'T', 'X'}
)

// --- ЗАГРУЗКА ---

// LoadTokenizer - конструктор токенизатора со словарем по умолчанию.
// Путь к каталогу словаря берется из переменной окружения KOTOBA_DICT_PATH,
// а при ее отсутствии - из каталога dict рядом с исходниками пакета.
func LoadTokenizer() (*Tokenizer, error) {
	if dictPath := os.Getenv(EnvDictPath); dictPath != "" {
		return LoadTokenizerFrom(dictPath)
	}

	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("не удалось определить путь к пакету kotoba")
	}

	packageDir := filepath.Dir(currentFilePath)
	dictPath := filepath.Join(packageDir, dictDirName)

	if _, err := os.Stat(dictPath); os.IsNotExist(err) {
		return nil, fmt.Errorf(
			"словарь не найден по вычисленному пути '%s'. "+
				"Соберите артефакты командой kotoba-build, либо установите переменную окружения %s",
			dictPath, EnvDictPath,
		)
	}

	return LoadTokenizerFrom(dictPath)
}

// LoadTokenizerFrom загружает пять артефактов из указанного каталога.
// Токенизатор после загрузки владеет двумя mmap-областями; их освобождает Close.
func LoadTokenizerFrom(dir string) (*Tokenizer, error) {
	fst, fstMmap, err := loadFST(filepath.Join(dir, FileTermFST))
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки %s: %w", FileTermFST, err)
	}

	matrix, matrixMmap, err := loadMatrix(filepath.Join(dir, FileMatrix))
	if err != nil {
		_ = fstMmap.Unmap()
		return nil, fmt.Errorf("ошибка загрузки %s: %w", FileMatrix, err)
	}

	dict, err := decodeGzipGob[EntryDictionary](filepath.Join(dir, FileDict))
	if err != nil {
		_ = fstMmap.Unmap()
		_ = matrixMmap.Unmap()
		return nil, fmt.Errorf("ошибка загрузки %s: %w", FileDict, err)
	}

	unkDict, err := decodeGzipGob[UnknownDictionary](filepath.Join(dir, FileUnkDict))
	if err != nil {
		_ = fstMmap.Unmap()
		_ = matrixMmap.Unmap()
		return nil, fmt.Errorf("ошибка загрузки %s: %w", FileUnkDict, err)
	}

	charTable, err := decodeGzipGob[CharTable](filepath.Join(dir, FileCharDef))
	if err != nil {
		_ = fstMmap.Unmap()
		_ = matrixMmap.Unmap()
		return nil, fmt.Errorf("ошибка загрузки %s: %w", FileCharDef, err)
	}

	return &Tokenizer{
		fst:        fst,
		dict:       dict,
		unkDict:    unkDict,
		charTable:  charTable,
		matrix:     matrix,
		fstMmap:    fstMmap,
		matrixMmap: matrixMmap,
	}, nil
}

// loadFST отображает term.fst в память и создает "виртуальные" срезы
// узлов и ребер, указывающие прямо в mmap-область.
func loadFST(path string) (*FSTSearcher, mmap.MMap, error) {
	mmapFile, err := mapFile(path)
	if err != nil {
		return nil, nil, err
	}

	var header FSTHeader
	if err := readHeader(mmapFile, &header); err != nil {
		_ = mmapFile.Unmap()
		return nil, nil, err
	}
	if header.Magic != FSTMagic {
		_ = mmapFile.Unmap()
		return nil, nil, errors.New("неверная сигнатура файла")
	}

	nodesBytes, err := section(mmapFile, header.NodesOffset, header.NodesCount*int64(unsafe.Sizeof(FlatNode{})))
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, nil, fmt.Errorf("секция узлов: %w", err)
	}
	edgesBytes, err := section(mmapFile, header.EdgesOffset, header.EdgesCount*int64(unsafe.Sizeof(FlatEdge{})))
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, nil, fmt.Errorf("секция ребер: %w", err)
	}

	nodes := bytesToSlice[FlatNode](nodesBytes)
	edges := bytesToSlice[FlatEdge](edgesBytes)

	if len(nodes) == 0 {
		_ = mmapFile.Unmap()
		return nil, nil, errors.New("пустой массив узлов")
	}

	return NewFSTSearcher(nodes, edges), mmapFile, nil
}

// loadMatrix отображает matrix.bin в память и создает матрицу поверх
// "виртуального" среза значений.
func loadMatrix(path string) (*CostMatrix, mmap.MMap, error) {
	mmapFile, err := mapFile(path)
	if err != nil {
		return nil, nil, err
	}

	var header MatrixHeader
	if err := readHeader(mmapFile, &header); err != nil {
		_ = mmapFile.Unmap()
		return nil, nil, err
	}
	if header.Magic != MatrixMagic {
		_ = mmapFile.Unmap()
		return nil, nil, errors.New("неверная сигнатура файла")
	}
	if header.Rows*header.Cols != header.ValuesCount {
		_ = mmapFile.Unmap()
		return nil, nil, errors.New("размер матрицы не согласован с заголовком")
	}

	valuesBytes, err := section(mmapFile, header.ValuesOffset, header.ValuesCount*int64(unsafe.Sizeof(int16(0))))
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, nil, fmt.Errorf("секция значений: %w", err)
	}

	values := bytesToSlice[int16](valuesBytes)

	return NewCostMatrix(int(header.Rows), int(header.Cols), values), mmapFile, nil
}

// mapFile отображает весь файл в виртуальное адресное пространство процесса.
// Файл не копируется в ОЗУ: ОС сама подгружает страницы по мере обращения.
func mapFile(path string) (mmap.MMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	mmapFile, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка mmap.Map: %w", err)
	}

	return mmapFile, nil
}

// readHeader читает заголовок (карту файла) прямо из mmap-среза.
// Заголовок занимает unsafe.Sizeof байт; binary.Read потребляет из них
// упакованную часть - так же заголовок был записан сборщиком.
func readHeader(mmapFile mmap.MMap, header any) error {
	headerSize := int(reflect.ValueOf(header).Elem().Type().Size())
	if len(mmapFile) < headerSize {
		return errors.New("файл слишком мал для заголовка")
	}
	if err := binary.Read(bytes.NewReader(mmapFile[:headerSize]), binary.LittleEndian, header); err != nil {
		return fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	return nil
}

// section проверяет, что секция [offset, offset+length) лежит внутри файла,
// и возвращает соответствующий срез байт.
func section(mmapFile mmap.MMap, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(mmapFile)) {
		return nil, errors.New("секция выходит за пределы файла")
	}
	return mmapFile[offset : offset+length], nil
}

// decodeGzipGob читает файл, распаковывает gzip и декодирует gob в T.
func decodeGzipGob[T any](path string) (*T, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	gzipReader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания gzip.Reader: %w", err)
	}

	decompressed, err := io.ReadAll(gzipReader)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки данных: %w", err)
	}
	if err := gzipReader.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия gzip.Reader: %w", err)
	}

	value := new(T)
	if err := gob.NewDecoder(bytes.NewReader(decompressed)).Decode(value); err != nil {
		return nil, fmt.Errorf("ошибка gob-декодирования: %w", err)
	}

	return value, nil
}

// bytesToSlice - "небезопасная" функция, которая создает заголовок среза,
// указывающий на область байт, без копирования самих данных.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	header := reflect.SliceHeader{Data: uintptr(unsafe.Pointer(&b[0])), Len: len(b) / size, Cap: len(b) / size}
	return *(*[]T)(unsafe.Pointer(&header))
}
