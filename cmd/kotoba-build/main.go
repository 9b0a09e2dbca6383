// kotoba-build - офлайн-сборщик словаря: превращает исходные файлы
// MeCab IPA в пять бинарных артефактов токенизатора.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/steosofficial/kotoba/builder"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var inputDir, outDir string

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Собрать бинарные артефакты словаря из исходных файлов MeCab IPA",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(inputDir); os.IsNotExist(err) {
				return fmt.Errorf("каталог '%s' не найден", inputDir)
			}

			start := time.Now()
			report, err := builder.New(inputDir, outDir, log).Build()
			if err != nil {
				return err
			}

			// Итоговый отчет о размерах артефактов.
			log.Info().
				Str("char.bin", asFileSize(report.CharDef)).
				Str("unk.bin", asFileSize(report.UnkDict)).
				Str("matrix.bin", asFileSize(report.CostMatrix)).
				Str("dict.bin", asFileSize(report.EntryDict)).
				Str("term.fst", asFileSize(report.TermFST)).
				Str("total", asFileSize(report.Total())).
				Msg("артефакты записаны")

			log.Info().
				Str("за", fmt.Sprintf("%.2fs", time.Since(start).Seconds())).
				Msg("сборка завершена")

			return nil
		},
	}

	buildCmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "каталог с распакованными файлами mecab-ipadic")
	buildCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "каталог назначения для бинарных артефактов")
	_ = buildCmd.MarkFlagRequired("input-dir")
	_ = buildCmd.MarkFlagRequired("out-dir")

	rootCmd := &cobra.Command{
		Use:           "kotoba-build",
		Short:         "Сборщик словаря морфологического токенизатора kotoba",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("сборка прервана")
		os.Exit(1)
	}
}

// asFileSize форматирует размер в человекочитаемом виде.
func asFileSize(size int) string {
	const (
		kb = 1024.0
		mb = kb * 1024.0
	)

	switch {
	case float64(size) < kb:
		return fmt.Sprintf("%d B", size)
	case float64(size) < mb:
		return fmt.Sprintf("%.2f KB", float64(size)/kb)
	default:
		return fmt.Sprintf("%.2f MB", float64(size)/mb)
	}
}
