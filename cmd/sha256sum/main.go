// sha256sum prints the SHA-256 digest of each named file, or of standard
// input when no file (or "-") is given. Input is read in fixed-size chunks
// and streamed through the hasher, so files of any size use a constant
// amount of memory.
//
// Output lines have the form "<64 hex digits>  <name>". A file that cannot
// be opened or read is reported on stderr and the remaining files are still
// processed; the exit status is then 1. Usage errors exit with status 2.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/Giulio2002/sha256"
)

const defaultBufferSize = 4096

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var bufferSize int
	var verbose bool

	flagSet := pflag.NewFlagSet("sha256sum", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVarP(&bufferSize, "buffer-size", "b", defaultBufferSize, "read input in chunks of this many bytes")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log each input as it is hashed")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sha256sum [flags] [file ...]\n\nWith no file, or when file is -, read standard input.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if bufferSize <= 0 {
		fmt.Fprintf(stderr, "error: --buffer-size must be positive, got %d\n", bufferSize)
		return 2
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	names := flagSet.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	buffer := make([]byte, bufferSize)
	status := 0
	for _, name := range names {
		digest, length, err := hashInput(name, stdin, buffer)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s: %v\n", name, err)
			status = 1
			continue
		}
		logger.Debug("hashed input", "name", name, "bytes", length, "buffer_size", bufferSize)
		fmt.Fprintf(stdout, "%s  %s\n", hex.EncodeToString(digest[:]), name)
	}
	return status
}

// hashInput opens name ("-" is stdin) and hashes its contents.
func hashInput(name string, stdin io.Reader, buffer []byte) ([sha256.Size]byte, uint64, error) {
	if name == "-" {
		return hashReader(stdin, buffer)
	}
	file, err := os.Open(name)
	if err != nil {
		return [sha256.Size]byte{}, 0, err
	}
	defer file.Close()
	return hashReader(file, buffer)
}

// hashReader feeds r to a fresh hasher one buffer-sized read at a time and
// returns the digest with the number of bytes hashed.
func hashReader(r io.Reader, buffer []byte) ([sha256.Size]byte, uint64, error) {
	var h sha256.Hasher
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			h.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return [sha256.Size]byte{}, 0, fmt.Errorf("reading input: %w", err)
		}
	}
	digest, err := h.Sum256()
	return digest, h.Len(), err
}
