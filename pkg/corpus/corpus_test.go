// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package corpus

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader("  abc \n\n\t\nAb1!\r\nabc\n"))
	if err != nil {
		t.Fatalf("Should not fail loading: %s", err)
	}

	want := []string{"abc", "Ab1!", "abc"}
	if c.Len() != len(want) {
		t.Fatalf("Corpus should have %d passwords, have %d", len(want), c.Len())
	}

	for i, p := range want {
		if c[i] != p {
			t.Errorf("Password %d should be %q, got %q", i, p, c[i])
		}
	}

	if chars := c.Chars(); chars != 10 {
		t.Errorf("Corpus should have 10 chars, have %d", chars)
	}
}

func TestLoad_LineEndings(t *testing.T) {
	c, err := Load(strings.NewReader("abc\rdef\rghi\n\r\njkl\r\nmno"))
	if err != nil {
		t.Fatalf("Should not fail loading: %s", err)
	}

	want := []string{"abc", "def", "ghi", "jkl", "mno"}
	if c.Len() != len(want) {
		t.Fatalf("Corpus should have %d passwords, have %d: %q", len(want), c.Len(), c)
	}
	for i, p := range want {
		if c[i] != p {
			t.Errorf("Password %d should be %q, got %q", i, p, c[i])
		}
	}
}

func TestLoad_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	c, err := Load(strings.NewReader("abc\n" + long + "\nxyz\n"))
	if err != nil {
		t.Fatalf("Should not fail loading a long line: %s", err)
	}

	if c.Len() != 3 || c[1] != long || c[2] != "xyz" {
		t.Errorf("Corpus should keep the long line, got %d passwords", c.Len())
	}
}

func TestLoad_InvalidEncodingAfterCR(t *testing.T) {
	_, err := Load(strings.NewReader("ok\rfine\r\xff\n"))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("Should fail with ErrInvalidEncoding, got %v", err)
	}

	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error should name the offending line: %s", err)
	}
}

func TestLoad_Unicode(t *testing.T) {
	c, err := Parse([]byte("mật khẩu\n"))
	if err != nil {
		t.Fatalf("Should not fail loading: %s", err)
	}

	if c.Chars() != 8 {
		t.Errorf("Chars should be counted as runes, got %d", c.Chars())
	}
}

func TestLoad_InvalidEncoding(t *testing.T) {
	_, err := Parse([]byte("ok\n\xff\xfe bad\n"))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("Should fail with ErrInvalidEncoding, got %v", err)
	}

	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Error should name the offending line: %s", err)
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("../../test/data/sample-passwords.txt")
	if err != nil {
		t.Fatalf("Should not fail loading file: %s", err)
	}

	if c.Len() != 6 {
		t.Errorf("Corpus should have 6 passwords, have %d", c.Len())
	}

	if c[1] != "Tr0ub4dor&3" {
		t.Errorf("Passwords should be trimmed, got %q", c[1])
	}
}

func TestLoadFile_Blank(t *testing.T) {
	c, err := LoadFile("../../test/data/blank.txt")
	if err != nil {
		t.Fatalf("Should not fail loading file: %s", err)
	}

	if err = c.RequireNonEmpty("blank"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Should fail with ErrEmptyInput, got %v", err)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	if _, err := LoadFile("../../test/data/invalid-utf8.txt"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Should fail with ErrInvalidEncoding, got %v", err)
	}

	if _, err := LoadFile("../../test/data/does-not-exist.txt"); err == nil {
		t.Errorf("Should fail on a missing file")
	}
}
