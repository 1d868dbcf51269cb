// Package main reads one date and reports whether its day-of-month is prime.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"chesstools/internal/primeday"
)

func main() {
	run(os.Stdin, os.Stdout)
}

func run(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "Enter a date (MM-DD-YYYY): ")

	line, _ := bufio.NewReader(in).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")

	result, err := primeday.Check(line)
	if err != nil {
		fmt.Fprintln(out, "Invalid date format. Please use MM-DD-YYYY.")
		return
	}

	fmt.Fprintf(out, "Day of the month: %d\n", result.Day)
	fmt.Fprintln(out, result.Verdict())
}
