package dataset

import (
	"errors"
	"fmt"
	"sort"
)

var ErrColumnNotFound = errors.New("column not found")

// Record is a single row, keyed by column name. Missing keys are nulls.
type Record map[string]interface{}

// Dataset is an immutable table of records with an inferred schema
type Dataset struct {
	schema  Schema
	records []Record
}

// New builds a dataset from the records. The schema is the union of every
// record's fields sorted by name, each with the kind able to hold all of
// its values.
func New(records []Record) *Dataset {
	kinds := make(map[string]Kind)
	normalized := make([]Record, len(records))

	for i, record := range records {
		row := make(Record, len(record))
		for name, value := range record {
			v, kind := normalize(value)
			if v != nil {
				row[name] = v
			}
			kinds[name] = mergeKinds(kinds[name], kind)
		}
		normalized[i] = row
	}

	schema := Schema{Fields: make([]Field, 0, len(kinds))}
	for name, kind := range kinds {
		// columns only ever holding null are written as strings
		if kind == KindNull {
			kind = KindString
		}
		schema.Fields = append(schema.Fields, Field{Name: name, Kind: kind})
	}
	sort.Slice(schema.Fields, func(i, j int) bool {
		return schema.Fields[i].Name < schema.Fields[j].Name
	})

	return &Dataset{
		schema:  schema,
		records: normalized,
	}
}

// Schema returns the dataset's schema
func (d *Dataset) Schema() Schema {
	return d.schema
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Has reports whether the dataset has the column
func (d *Dataset) Has(column string) bool {
	return d.schema.Index(column) >= 0
}

// Drop returns a dataset without the column. Dropping a column that does
// not exist returns the dataset unchanged.
func (d *Dataset) Drop(column string) *Dataset {
	index := d.schema.Index(column)
	if index < 0 {
		return d
	}

	fields := make([]Field, 0, len(d.schema.Fields)-1)
	fields = append(fields, d.schema.Fields[:index]...)
	fields = append(fields, d.schema.Fields[index+1:]...)

	records := make([]Record, len(d.records))
	for i, record := range d.records {
		row := make(Record, len(record))
		for name, value := range record {
			if name != column {
				row[name] = value
			}
		}
		records[i] = row
	}

	return &Dataset{
		schema:  Schema{Fields: fields},
		records: records,
	}
}

// DropStrict is like Drop but fails when the column does not exist
func (d *Dataset) DropStrict(column string) (*Dataset, error) {
	if !d.Has(column) {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}

	return d.Drop(column), nil
}

// Chunks splits the dataset into datasets of at most size records sharing
// the same schema. A size of zero or less returns the dataset itself.
func (d *Dataset) Chunks(size int) []*Dataset {
	if size <= 0 || len(d.records) <= size {
		return []*Dataset{d}
	}

	chunks := make([]*Dataset, 0, (len(d.records)+size-1)/size)
	for start := 0; start < len(d.records); start += size {
		end := start + size
		if end > len(d.records) {
			end = len(d.records)
		}
		chunks = append(chunks, &Dataset{
			schema:  d.schema,
			records: d.records[start:end],
		})
	}

	return chunks
}

// Rows returns the records with every value converted to the Go type of its
// column: bool, int64, float64 or string. Null values are left out.
func (d *Dataset) Rows() []map[string]interface{} {
	rows := make([]map[string]interface{}, len(d.records))
	for i, record := range d.records {
		row := make(map[string]interface{}, len(record))
		for _, field := range d.schema.Fields {
			if value := coerce(record[field.Name], field.Kind); value != nil {
				row[field.Name] = value
			}
		}
		rows[i] = row
	}

	return rows
}
