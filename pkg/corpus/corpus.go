// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyInput is returned when a password or a corpus is empty where a non-empty one is required.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidEncoding is returned when the input bytes are not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrMismatchedInput is returned when the shape of the input does not allow the operation,
	// e.g. a comparison without candidates.
	ErrMismatchedInput = errors.New("mismatched input")
)

// Corpus is an ordered list of passwords loaded from one source. Duplicates are kept.
type Corpus []string

// Len is the number of passwords in the corpus.
func (c Corpus) Len() int {
	return len(c)
}

// Chars is the total number of characters (runes) of all the passwords in the corpus.
func (c Corpus) Chars() int {
	total := 0
	for _, p := range c {
		total += utf8.RuneCountInString(p)
	}

	return total
}

// Load reads a line delimited corpus. Lines end in \n, \r\n or a lone \r and have no length limit.
// Each line is trimmed and lines that end up empty are dropped. A line that is not valid UTF-8 fails the
// whole load.
func Load(r io.Reader) (Corpus, error) {
	reader := bufio.NewReader(r)

	c := make(Corpus, 0, 1024)
	line := 0
	for {
		chunk, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		if len(chunk) > 0 {
			chunk = bytes.TrimSuffix(bytes.TrimSuffix(chunk, []byte{'\n'}), []byte{'\r'})
			for _, raw := range bytes.Split(chunk, []byte{'\r'}) {
				line++
				if !utf8.Valid(raw) {
					return nil, fmt.Errorf("%w: line %d is not valid UTF-8", ErrInvalidEncoding, line)
				}

				if password := strings.TrimSpace(string(raw)); password != "" {
					c = append(c, password)
				}
			}
		}

		if err == io.EOF {
			return c, nil
		}
	}
}

// Parse is Load over an in memory buffer, e.g. an uploaded file.
func Parse(data []byte) (Corpus, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads the corpus stored in fileName.
func LoadFile(fileName string) (Corpus, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}

	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	c, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	return c, nil
}

// RequireNonEmpty returns ErrEmptyInput if the corpus has no passwords. name is used in the error message.
func (c Corpus) RequireNonEmpty(name string) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: corpus %q has no passwords", ErrEmptyInput, name)
	}

	return nil
}
