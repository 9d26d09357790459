package scores

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadCSV loads a table from CSV data whose first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty score file")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t, err := NewTable(header...)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := t.Append(record); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadFile loads a score file from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed score file %s", path)
	}
	return t, nil
}
