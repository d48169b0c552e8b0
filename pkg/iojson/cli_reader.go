package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by FileReader.Read when no file was given and stdin
// is a terminal.
var ErrNoInput = errors.New("no input provided")

// FileReader reads a T from the file named by its flag, or from stdin when
// the flag is empty.
type FileReader[T any] struct {
	// Name is the flag name. Defaults to "file".
	Name string
	// Decode parses the input. Defaults to JSON.
	Decode func(io.Reader) (T, error)
	// Stdin overrides os.Stdin.
	Stdin *os.File

	fileFlagValue string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	name := fr.Name
	if name == "" {
		name = "file"
	}
	return &cli.StringFlag{
		Name:        name,
		Aliases:     []string{name[:1]},
		Usage:       fmt.Sprintf("path to %s file (reads from stdin if not provided)", name),
		Destination: &fr.fileFlagValue,
	}
}

// Path returns the flag value.
func (fr *FileReader[T]) Path() string {
	return fr.fileFlagValue
}

// SetPath sets the file to read, as if given on the command line.
func (fr *FileReader[T]) SetPath(path string) {
	fr.fileFlagValue = path
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stdin := fr.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if term.IsTerminal(int(stdin.Fd())) {
			return input, fmt.Errorf("%w (stdin is a terminal); use --%s or pipe input", ErrNoInput, fr.Flag().Name)
		}
		reader = stdin
	}

	if fr.Decode != nil {
		return fr.Decode(reader)
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
