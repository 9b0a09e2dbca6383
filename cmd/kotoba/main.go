// kotoba - консольный разбор японского текста: печатает морфемы или слова
// для каждого аргумента либо для строк стандартного ввода.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steosofficial/kotoba/tokenizer"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "kotoba",
		Short:         "Морфологический токенизатор японского языка",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tokenize [текст...]",
		Short: "Разбить текст на морфемы",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, printMorphemes)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "word [текст...]",
		Short: "Разбить текст на слова (окончания присоединяются к основам)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, printWords)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка: %v\n", err)
		os.Exit(1)
	}
}

// run загружает токенизатор и применяет печать к каждому входу:
// к аргументам командной строки либо к строкам stdin.
func run(args []string, print func(*tokenizer.Tokenizer, string)) error {
	tok, err := tokenizer.LoadTokenizer()
	if err != nil {
		return err
	}
	defer tok.Close()

	if len(args) > 0 {
		for _, input := range args {
			print(tok, input)
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		print(tok, scanner.Text())
	}

	return scanner.Err()
}

func printMorphemes(tok *tokenizer.Tokenizer, input string) {
	for _, morpheme := range tok.Tokenize(input) {
		fields := []string{
			morpheme.PartOfSpeech.String(),
			morpheme.BaseForm,
			morpheme.Reading,
		}
		fmt.Printf("%s\t%s\n", morpheme.Text, strings.Join(fields, ","))
	}
	fmt.Println("EOS")
}

func printWords(tok *tokenizer.Tokenizer, input string) {
	for _, word := range tok.TokenizeWord(input) {
		labels := make([]string, 0, len(word.Inflections))
		for _, inflection := range word.Inflections {
			labels = append(labels, inflection.String())
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", word.Text, word.BaseForm, word.Class, strings.Join(labels, ","))
	}
	fmt.Println("EOS")
}
