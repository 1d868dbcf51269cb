package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"chesstools/internal/board"
	"chesstools/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdUndo
	CmdResume
	CmdColor
	CmdHistory
	CmdFEN
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// LineReader is satisfied by readline.Instance and by the scanner fallback
type LineReader interface {
	Readline() (string, error)
}

// prompter readers draw the prompt themselves
type prompter interface {
	SetPrompt(prompt string)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader reads lines from any reader, io.EOF at the end
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (s *scannerReader) Readline() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand shows the prompt and reads one command. End of input is CmdQuit.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	if p, ok := c.input.(prompter); ok {
		p.SetPrompt(prompt)
	} else {
		c.ShowPrompt(prompt)
	}

	line, err := c.input.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	return ParseCommand(line), nil
}

// ParseCommand recognizes the control words, everything else is a move
func ParseCommand(line string) *Command {
	input := strings.TrimSpace(line)
	parts := strings.Fields(input)

	if len(parts) > 0 {
		args := parts[1:]
		switch strings.ToLower(parts[0]) {
		case "quit", "exit":
			if len(args) == 0 {
				return &Command{Type: CmdQuit, Raw: input}
			}
		case "help", "?":
			if len(args) == 0 {
				return &Command{Type: CmdHelp, Raw: input}
			}
		case "undo":
			return &Command{Type: CmdUndo, Args: args, Raw: input}
		case "resume":
			return &Command{Type: CmdResume, Args: args, Raw: input}
		case "color":
			return &Command{Type: CmdColor, Args: args, Raw: input}
		case "history":
			return &Command{Type: CmdHistory, Raw: input}
		case "fen":
			return &Command{Type: CmdFEN, Raw: input}
		}
	}

	// Assume it's a move, the move parser reports bad text
	return &Command{Type: CmdMove, Raw: input}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard prints the board framed by blank lines
func (c *CLI) DisplayBoard(b board.Board) {
	if c.theme == ThemeOff {
		c.ShowMessage("\n" + b.ToASCII() + "\n")
		return
	}

	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n   a b c d e f g h\n")
	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d  ", 8-r))
		for f := 0; f < 8; f++ {
			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}

			piece := b[r][f]
			if piece.IsEmpty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			color := theme.black
			if piece.IsWhite() {
				color = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece, theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("   a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Simple Console Chess (no castling / en passant / check detection)")
	c.ShowMessage("Enter moves like: e2 e4  or  e7e5. Type 'quit' to exit.")
	c.ShowMessage("")
}

// ShowHelp is printed after help/? has reset the board
func (c *CLI) ShowHelp() {
	c.ShowMessage("Enter moves like 'e2 e4' or 'g8f6'. 'quit' to exit.")
	c.ShowMessage("Other commands: undo [n], history, fen, resume <FEN>, color <off|brown|green|gray>")
}

func (c *CLI) ShowGoodbye() {
	c.ShowMessage("Game ended.")
}

func (c *CLI) ShowUnparsable() {
	c.ShowMessage("Can't parse move. Use format like 'e2 e4' or 'e2e4'.")
}

func (c *CLI) ShowInvalidSquare() {
	c.ShowMessage("Invalid square name. Use a-h and 1-8 (e.g. e2).")
}

func (c *CLI) ShowInvalidMove(reason string) {
	c.ShowMessage("Invalid move: " + reason)
}

// ShowOutcome reports promotion and capture of an applied move
func (c *CLI) ShowOutcome(o game.Outcome) {
	if o.Promoted {
		c.ShowMessage(fmt.Sprintf("%s pawn promoted to Queen!", o.Player))
	}
	if o.Captured != board.Empty {
		c.ShowMessage(fmt.Sprintf("Captured %s!", o.Captured))
	}
}

func (c *CLI) ShowGameHistory(initialFEN string, moves []string, currentFEN string) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", initialFEN))

	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, moves[i], moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, moves[i]))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", currentFEN))
}
