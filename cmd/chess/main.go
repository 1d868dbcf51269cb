// Package main runs the simplified two-player console chess game.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chesstools/internal/cli"
	"chesstools/internal/service"
	"chesstools/internal/storage"
	clitransport "chesstools/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
}

// run plays one console session; deferred cleanup always runs before it returns
func run(args []string, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("chess", flag.ContinueOnError)
	var (
		storagePath = fs.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		theme       = fs.String("theme", "off", "Board color theme (off|brown|green|gray)")
		historyFile = fs.String("history-file", "", "Readline history file (interactive terminals only)")
		fen         = fs.String("fen", "", "Start from this FEN position instead of the standard one")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store *storage.Store
	if *storagePath != "" {
		var err error
		if store, err = storage.NewStore(*storagePath, false); err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	svc := service.New(store)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("Warning: failed to close cleanly: %v", err)
		}
	}()

	input, closeInput, err := newLineReader(stdin, *historyFile)
	if err != nil {
		return err
	}
	defer closeInput()

	view := cli.New(input, stdout)
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		return err
	}

	handler := clitransport.New(svc, view)
	if err := handler.Start(*fen); err != nil {
		return err
	}

	view.ShowWelcome()
	if err := handler.Run(); err != nil {
		log.Printf("Input error: %v", err)
	}
	return nil
}

// newLineReader uses readline on a terminal and a plain scanner otherwise
func newLineReader(stdin *os.File, historyFile string) (cli.LineReader, func(), error) {
	if !term.IsTerminal(int(stdin.Fd())) {
		return cli.NewScannerReader(stdin), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Stdin:           stdin,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, nil, err
	}
	return interruptAsEOF{rl}, func() { rl.Close() }, nil
}

// interruptAsEOF ends the game on ^C like on ^D
type interruptAsEOF struct {
	*readline.Instance
}

func (r interruptAsEOF) Readline() (string, error) {
	line, err := r.Instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}
