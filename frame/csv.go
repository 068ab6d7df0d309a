package frame

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/baxromumarov/forkjoin"
)

var utf8BOM = []byte("\ufeff")

// ReadOptions controls CSV decoding.
type ReadOptions struct {
	// Separator is the field delimiter. Zero means ','.
	Separator rune

	// NoHeader treats the first record as data and names the columns
	// column_1, column_2, ...
	NoHeader bool

	// NullValues lists cell contents that decode as null in addition to
	// the empty string.
	NullValues []string
}

// ReadCSV decodes r into a Frame. Every record must have as many fields as
// the first one.
func ReadCSV(r io.Reader, opts ReadOptions) (*Frame, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("frame: read csv: %w", err)
	}
	cr := csv.NewReader(br)
	if opts.Separator != 0 {
		cr.Comma = opts.Separator
	}

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("frame: csv line %d: %w", perr.Line, perr.Err)
		}
		return nil, fmt.Errorf("frame: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	var names []string
	if opts.NoHeader {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
	} else {
		names = records[0]
		records = records[1:]
	}

	nulls := make(map[string]struct{}, len(opts.NullValues)+1)
	nulls[""] = struct{}{}
	for _, v := range opts.NullValues {
		nulls[v] = struct{}{}
	}

	columns := make([]*Column, len(names))
	forkjoin.RunScope(func(s *forkjoin.Scope) struct{} {
		for j := range names {
			j := j
			s.Spawn(func(*forkjoin.Scope) {
				columns[j] = buildColumn(names[j], j, records, nulls)
			})
		}
		return struct{}{}
	})

	return newFrame(columns)
}

// skipBOM discards a leading UTF-8 byte order mark so that a quoted first
// header field still parses.
func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}

func buildColumn(name string, j int, records [][]string, nulls map[string]struct{}) *Column {
	c := &Column{
		name:   name,
		values: make([]string, len(records)),
		valid:  make([]bool, len(records)),
	}
	for i, rec := range records {
		v := rec[j]
		if _, null := nulls[v]; null {
			continue
		}
		c.values[i] = v
		c.valid[i] = true
	}
	return c
}
