// Package output provides different formats of output for aggregated scores.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io/ioutil"

	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
)

// TableFormatter is used in an aggregation pipeline to serialise a score table.
type TableFormatter struct {
	// Extension is appended to the base name of output files, including the dot.
	Extension string
	Format    func(t *scores.Table) ([]byte, error)
}

var (
	// CsvTableFormatter writes a header row followed by one record per row, without an index column.
	CsvTableFormatter = TableFormatter{Extension: ".csv", Format: csvTable}
	// JsonTableFormatter writes an array of column->value records.
	JsonTableFormatter = TableFormatter{Extension: ".json", Format: jsonTable}
)

func csvTable(t *scores.Table) ([]byte, error) {
	b := bytes.NewBuffer(nil)
	w := csv.NewWriter(b)
	if err := w.Write(t.Header()); err != nil {
		return nil, err
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.Write(t.Row(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func jsonTable(t *scores.Table) ([]byte, error) {
	header := t.Header()
	records := make([]map[string]string, t.Len())
	for i := range records {
		r := t.Row(i)
		records[i] = make(map[string]string, len(header))
		for j, h := range header {
			records[i][h] = r[j]
		}
	}
	return json.MarshalIndent(records, "", "    ")
}

// WriteFile formats the table and replaces the file at path with the result.
func WriteFile(path string, t *scores.Table, f TableFormatter) error {
	b, err := f.Format(t)
	if err != nil {
		return errors.Wrapf(err, "formatting %s", path)
	}
	if err := ioutil.WriteFile(path, b, 0664); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
