// Утилита richtext конвертирует rich-text контент CMS между форматами хранения и редактора,
// рендерит его в HTML, Markdown и текст, считает статистику и переводит устаревший контент в блоки.
//
// Использование:
//
//	richtext [-trace] <command> [flags]
//
// Команды:
//   - editor: блоки (или устаревшая строка) в документ редактора TipTap.
//   - blocks: документ редактора TipTap в блоки.
//   - render: рендер блоков в html, markdown, json, text или editor.
//   - text: плоский текст блоков (параграфы или строки).
//   - stats: количество слов, символов, блоков и краткое содержание.
//   - import-html: устаревший HTML в блоки.
//   - migrate: устаревшая строка в блоки.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/config"
)

var version string = "DEV"

func main() {
	trace := flag.Bool("trace", false, "Verbose logs")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	_ = godotenv.Load()

	cfg, err := config.ReadConfig()
	if err != nil {
		slog.Error("Read config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *trace || cfg.Trace {
		level = slog.LevelDebug
		slog.SetLogLoggerLevel(level)
	}

	// stdout занят результатом, логи идут в stderr
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	slog.Debug("Start richtext", "version", version, "format", cfg.Format)

	if err := run(cfg, flag.Args(), os.Stdin, os.Stdout); err != nil {
		slog.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [-trace] <command> [flags]\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-12s %s\n", cmd.name, cmd.description)
	}
	fmt.Fprintln(out, "\nGlobal flags:")
	flag.PrintDefaults()
}
