package dataset

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// CorruptRecordColumn holds the raw text of lines that are not JSON objects
const CorruptRecordColumn = "_corrupt_record"

// ReadJSON decodes newline-delimited JSON. Each line holding an object is a
// record and each line holding an array of objects is one record per
// element. Blank lines are skipped. Any other line is kept as a record with
// its raw text in CorruptRecordColumn.
func ReadJSON(r io.Reader) ([]Record, error) {
	records := []Record{}
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			records = append(records, decodeLine(line)...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}

	return records, nil
}

func decodeLine(line []byte) []Record {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return nil
	}

	value, err := decodeValue(trimmed)
	if err != nil {
		return []Record{corrupt(trimmed)}
	}

	switch t := value.(type) {
	case map[string]interface{}:
		return []Record{t}
	case []interface{}:
		records := make([]Record, 0, len(t))
		for _, element := range t {
			object, ok := element.(map[string]interface{})
			if !ok {
				return []Record{corrupt(trimmed)}
			}
			records = append(records, object)
		}
		return records
	default:
		return []Record{corrupt(trimmed)}
	}
}

// decodeValue decodes a single JSON value, failing on trailing data
func decodeValue(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	var extra interface{}
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return value, nil
}

func corrupt(line []byte) Record {
	return Record{CorruptRecordColumn: string(line)}
}
