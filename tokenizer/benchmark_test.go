package tokenizer

import (
	"testing"
)

// Бенчмарки работают на собранном словаре IPA и пропускаются без него.

func BenchmarkTokenize(b *testing.B) {
	requireDict(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize("昨日、彼に会った。すごく嬉しかったよ。")
	}
}

func BenchmarkTokenizeWord(b *testing.B) {
	requireDict(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.TokenizeWord("昨日、彼に会った。すごく嬉しかったよ。")
	}
}

func BenchmarkTokenizeBatch(b *testing.B) {
	requireDict(b)

	inputs := make([]string, 1000)
	for i := range inputs {
		inputs[i] = "東京都に住む"
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.TokenizeBatch(inputs)
	}
}

func BenchmarkFSTGetFromPrefix(b *testing.B) {
	requireDict(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.fst.GetFromPrefix("東京都に住む")
	}
}
