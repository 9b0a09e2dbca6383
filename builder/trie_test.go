package builder

import (
	"testing"

	"github.com/steosofficial/kotoba/tokenizer"
)

// buildSearcher строит автомат по ключам со значениями и возвращает
// поисковик токенизатора поверх уплощенных массивов.
func buildSearcher(entries []struct {
	key   string
	value uint64
}) *tokenizer.FSTSearcher {
	root := newTrieNode()
	for _, entry := range entries {
		root.insert(entry.key, entry.value)
	}
	nodes, edges := root.flatten()
	return tokenizer.NewFSTSearcher(nodes, edges)
}

// TestTrieOverlappingKeys: по входу находятся ВСЕ ключи-префиксы,
// включая перекрывающиеся, в порядке неубывания длины.
func TestTrieOverlappingKeys(t *testing.T) {
	searcher := buildSearcher([]struct {
		key   string
		value uint64
	}{
		{"東", 0<<5 | 1},
		{"東京", 1<<5 | 1},
		{"東京都", 2<<5 | 1},
	})

	matches := searcher.GetFromPrefix("東京都に住む")

	if len(matches) != 3 {
		t.Fatalf("ожидалось 3 совпадения, получено %v", matches)
	}

	expected := []tokenizer.PrefixMatch{
		{Length: len("東"), ID: 0},
		{Length: len("東京"), ID: 1},
		{Length: len("東京都"), ID: 2},
	}
	for i, match := range matches {
		if match != expected[i] {
			t.Errorf("совпадение %d: ожидалось %+v, получено %+v", i, expected[i], match)
		}
	}
}

// TestTrieHomographs: значение с count > 1 разворачивается в подряд
// идущие term ID.
func TestTrieHomographs(t *testing.T) {
	searcher := buildSearcher([]struct {
		key   string
		value uint64
	}{
		{"に", 4<<5 | 3},
	})

	matches := searcher.GetFromPrefix("に住む")

	if len(matches) != 3 {
		t.Fatalf("ожидалось 3 совпадения, получено %v", matches)
	}
	for i, match := range matches {
		if match.ID != 4+i || match.Length != len("に") {
			t.Errorf("совпадение %d: ожидался ID %d длины %d, получено %+v", i, 4+i, len("に"), match)
		}
	}
}

// TestTrieNoMatch: вход без единого ключа-префикса дает пустой результат.
func TestTrieNoMatch(t *testing.T) {
	searcher := buildSearcher([]struct {
		key   string
		value uint64
	}{
		{"東京", 0<<5 | 1},
	})

	if matches := searcher.GetFromPrefix("京都"); len(matches) != 0 {
		t.Errorf("ожидался пустой результат, получено %v", matches)
	}
}

// TestTrieStopsAtFirstMismatch: обход прекращается на первом байте
// без перехода - более длинные ключи с другим продолжением не находятся.
func TestTrieStopsAtFirstMismatch(t *testing.T) {
	searcher := buildSearcher([]struct {
		key   string
		value uint64
	}{
		{"住", 0<<5 | 1},
		{"住宅", 1<<5 | 1},
	})

	matches := searcher.GetFromPrefix("住む")

	if len(matches) != 1 || matches[0].ID != 0 {
		t.Errorf("ожидалось только совпадение '住', получено %v", matches)
	}
}
