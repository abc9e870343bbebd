// Package persist reads a document from a line source and writes it back to a
// sink, one '\n'-terminated record per line.
package persist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"lined/internal/linestore"
)

var (
	// ErrSourceUnavailable is returned when the source cannot be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSinkUnavailable is returned when the sink cannot be opened.
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrWriteFailed is returned when a write, flush or close fails.
	ErrWriteFailed = errors.New("write failed")
)

// Load reads every '\n'-terminated record of r into a new store. A trailing
// '\r' stays part of the line, so CRLF files round-trip unchanged. A final
// record without a terminator still becomes a line; an empty source yields
// one empty line. Lines may be of any length.
func Load(r io.Reader, capacityHint int) (*linestore.Store, error) {
	s := linestore.New(capacityHint)
	br := bufio.NewReader(r)
	for {
		record, err := br.ReadBytes('\n')
		if len(record) > 0 {
			s.Append(bytes.TrimSuffix(record, []byte{'\n'}))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSourceUnavailable, s.Len(), err)
		}
	}
	if s.Len() == 0 {
		s.Append(nil)
	}
	return s, nil
}

// LoadFile opens path and loads it.
func LoadFile(path string, capacityHint int) (*linestore.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	s, err := Load(f, capacityHint)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Save writes each line of s followed by '\n'.
func Save(s *linestore.Store, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < s.Len(); i++ {
		line, err := s.Line(i)
		if err != nil {
			return err
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrWriteFailed, i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrWriteFailed, i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrWriteFailed, err)
	}
	return nil
}

// SaveFile truncates path and writes s to it. The store is only read, so a
// failed save leaves the in-memory document intact even if the file on disk
// was partly written.
func SaveFile(s *linestore.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	if err := Save(s, f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w: close: %w", path, ErrWriteFailed, err)
	}
	return nil
}
