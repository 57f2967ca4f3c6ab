package parquetio

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/josenarvaezp/curate/internal/dataset"
)

const (
	rootTag = "name=parquet_go_root, repetitiontype=REQUIRED"
	// number of goroutines used by the writer to encode pages
	writerParallelism = 4
)

type schemaField struct {
	Tag string `json:"Tag"`
}

type schemaRoot struct {
	Tag    string        `json:"Tag"`
	Fields []schemaField `json:"Fields"`
}

// SchemaJSON builds the JSON schema the parquet writer expects. Every column
// is optional so records missing a field are written as nulls.
func SchemaJSON(s dataset.Schema) (string, error) {
	root := schemaRoot{Tag: rootTag}
	for _, field := range s.Fields {
		tag := "name=" + field.Name + ", repetitiontype=OPTIONAL, type="
		switch field.Kind {
		case dataset.KindBool:
			tag += "BOOLEAN"
		case dataset.KindInt:
			tag += "INT64"
		case dataset.KindFloat:
			tag += "DOUBLE"
		default:
			tag += "UTF8, encoding=PLAIN_DICTIONARY"
		}
		root.Fields = append(root.Fields, schemaField{Tag: tag})
	}

	b, err := json.Marshal(root)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// WriteFile writes the dataset to a snappy compressed parquet file
func WriteFile(path string, ds *dataset.Dataset) error {
	if len(ds.Schema().Fields) == 0 {
		return fmt.Errorf("parquet writer init: dataset has no columns")
	}

	schema, err := SchemaJSON(ds.Schema())
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}

	writer, err := pw.NewJSONWriter(schema, fw, writerParallelism)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	writer.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, row := range ds.Rows() {
		rec, err := json.Marshal(row)
		if err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet encode row %d: %w", i, err)
		}
		if err := writer.Write(string(rec)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", i, err)
		}
	}

	if err := writer.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet write footer: %w", err)
	}

	return fw.Close()
}
