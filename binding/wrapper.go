package main

import (
	// #include <stdlib.h>
	"C"
	"encoding/json"
	"unsafe"

	"github.com/steosofficial/kotoba/tokenizer"
)

var tok *tokenizer.Tokenizer

//export CreateTokenizer
func CreateTokenizer() {
	tok, _ = tokenizer.LoadTokenizer()
}

//export TokenizeText
func TokenizeText(input *C.char) *C.char {
	goInput := C.GoString(input)

	morphemes := tok.Tokenize(goInput)
	morphemesJSON, _ := json.Marshal(morphemes)

	return C.CString(string(morphemesJSON))
}

//export TokenizeWordText
func TokenizeWordText(input *C.char) *C.char {
	goInput := C.GoString(input)

	words := tok.TokenizeWord(goInput)
	wordsJSON, _ := json.Marshal(words)

	return C.CString(string(wordsJSON))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseTokenizer
func ReleaseTokenizer() {
	if tok != nil {
		_ = tok.Close()
		tok = nil
	}
}

func main() {}
