package parquetio

import (
	"errors"
	"io"
	"os"
	"strings"

	parquet "github.com/segmentio/parquet-go"
)

// Table is the content of a parquet file with nulls left out of the rows
type Table struct {
	Columns []string
	NumRows int64
	Rows    []map[string]parquet.Value
}

// ReadFile reads every row of a local parquet file
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, err
	}

	columns := []string{}
	for _, path := range file.Schema().Columns() {
		columns = append(columns, strings.Join(path, "."))
	}

	table := &Table{
		Columns: columns,
		NumRows: file.NumRows(),
	}

	reader := parquet.NewReader(file)
	defer reader.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			values := make(map[string]parquet.Value, len(row))
			for _, value := range row {
				if value.IsNull() || value.Column() < 0 || value.Column() >= len(columns) {
					continue
				}
				values[columns[value.Column()]] = value.Clone()
			}
			table.Rows = append(table.Rows, values)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	return table, nil
}
