// Package main implements the mfs REPL, the thin command dispatcher
// collaborator spec.md §4.10/§6 describes sitting in front of the FAT32
// engine in package mfs32.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mfsutil/mfs32"
)

const prompt = "mfs> "

// maxTokens mirrors original_source/mfs.c's MAX_NUM_ARGUMENTS: only the
// first 5 whitespace-delimited tokens of a command line are recognized,
// surplus tokens are silently discarded (spec.md §6, SPEC_FULL.md §5).
const maxTokens = 5

// maxCommandSize mirrors original_source/mfs.c's MAX_COMMAND_SIZE.
const maxCommandSize = 255

// Dispatcher tokenizes REPL input, routes verbs to a *mfs32.Session, and
// formats output and the exact error strings spec.md §6 fixtures assert.
type Dispatcher struct {
	session *mfs32.Session
	out     io.Writer
}

// NewDispatcher builds a Dispatcher writing command output to out.
func NewDispatcher(session *mfs32.Session, out io.Writer) *Dispatcher {
	return &Dispatcher{session: session, out: out}
}

// Run reads whitespace-delimited command lines from in until EOF or a
// quit/exit command, printing prompt before each read (spec.md §6).
// EOF is treated the same as an explicit exit, per spec.md §6's guidance
// ("implementers should treat EOF as exit").
func (d *Dispatcher) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, maxCommandSize), maxCommandSize)

	for {
		fmt.Fprint(d.out, prompt)

		if !scanner.Scan() {
			return
		}

		tokens := tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		if d.dispatch(tokens) == errQuit {
			return
		}
	}
}

// errQuit is returned by dispatch to signal the REPL should stop; it is
// never printed.
var errQuit = errors.New("quit")

func tokenize(line string) []string {
	fields := strings.Fields(line)
	if len(fields) > maxTokens {
		fields = fields[:maxTokens]
	}
	return fields
}

func (d *Dispatcher) dispatch(tokens []string) error {
	verb := tokens[0]
	args := tokens[1:]

	switch verb {
	case "quit", "exit":
		return errQuit

	case "open":
		if d.session.State() == mfs32.Open {
			d.printErr(mfs32.ErrAlreadyOpen)
			return nil
		}
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		if err := d.session.Open(args[0]); err != nil {
			d.printErr(err)
		}
		return nil

	case "close":
		if err := d.session.Close(); err != nil {
			d.printErr(err)
		}
		return nil
	}

	if d.session.State() != mfs32.Open {
		d.printErr(mfs32.ErrMustOpenFirst)
		return nil
	}

	switch verb {
	case "info":
		fmt.Fprint(d.out, d.session.Info())

	case "stat":
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		entry, err := d.session.Stat(args[0])
		if err != nil {
			d.printErr(err)
			return nil
		}
		printStat(d.out, entry)

	case "ls":
		for _, e := range d.session.Ls() {
			fmt.Fprintf(d.out, "%s \n", e.Name[:])
		}

	case "cd":
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		if err := d.session.Cd(args[0]); err != nil {
			d.printErr(err)
		}

	case "get":
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		if err := d.session.Get(args[0]); err != nil {
			d.printErr(err)
		}

	case "read":
		if len(args) < 3 {
			fmt.Fprintf(d.out, "Error: Not enough arguments. (%d arguments given)\n", len(tokens))
			return nil
		}
		offset, errOff := strconv.ParseInt(args[1], 10, 64)
		length, errLen := strconv.ParseInt(args[2], 10, 64)
		if errOff != nil {
			offset = 0
		}
		if errLen != nil {
			length = 0
		}
		if err := d.session.Read(d.out, args[0], offset, length); err != nil {
			d.printErr(err)
		}

	case "del":
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		if err := d.session.Del(args[0]); err != nil {
			d.printErr(err)
		}

	case "undel":
		if len(args) < 1 {
			d.printErr(mfs32.ErrFilenameNeeded)
			return nil
		}
		if err := d.session.Undel(args[0]); err != nil {
			d.printErr(err)
		}

	default:
		d.printErr(mfs32.ErrUnknownCommand)
	}

	return nil
}

func printStat(w io.Writer, e mfs32.DirEntry) {
	fmt.Fprintf(w, "Name:               %s \n", e.Name[:])
	fmt.Fprintf(w, "Attribute:          %#x\n", e.Attr)
	fmt.Fprintf(w, "FirstClusterHigh:   %d \n", e.FirstClusterHigh)
	fmt.Fprintf(w, "FirstClusterLow:    %d \n", e.FirstClusterLow)
	fmt.Fprintf(w, "FileSize:           %d \n", e.FileSize)
}

// errorText maps the sentinel errors in package mfs32 to the exact
// fixture strings in spec.md §6. Entries are checked with errors.Is so a
// checkpoint-wrapped error still resolves to the right line.
func (d *Dispatcher) printErr(err error) {
	fmt.Fprintln(d.out, "Error: "+errorText(err))
}

func errorText(err error) string {
	switch {
	case errors.Is(err, mfs32.ErrImageNotFound):
		return "File system image not found."
	case errors.Is(err, mfs32.ErrAlreadyOpen):
		return "File system image is already open."
	case errors.Is(err, mfs32.ErrNotOpen):
		return "File system not open."
	case errors.Is(err, mfs32.ErrMustOpenFirst):
		return "File system image must be opened first."
	case errors.Is(err, mfs32.ErrFilenameNeeded):
		return "Filename not given."
	case errors.Is(err, mfs32.ErrNotFound):
		return "File not found. "
	case errors.Is(err, mfs32.ErrNotADirectory):
		return "Entry is not a directory. "
	case errors.Is(err, mfs32.ErrUnknownCommand):
		return "Unknown command."
	default:
		return err.Error()
	}
}
