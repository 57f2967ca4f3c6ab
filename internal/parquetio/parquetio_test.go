package parquetio_test

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/josenarvaezp/curate/internal/dataset"
	"github.com/josenarvaezp/curate/internal/parquetio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SchemaJSON(t *testing.T) {
	schema := dataset.Schema{Fields: []dataset.Field{
		{Name: "a", Kind: dataset.KindInt},
		{Name: "b", Kind: dataset.KindFloat},
		{Name: "c", Kind: dataset.KindBool},
		{Name: "d", Kind: dataset.KindString},
	}}

	s, err := parquetio.SchemaJSON(schema)
	require.Nil(t, err)

	assert.JSONEq(t, `{
		"Tag": "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": [
			{"Tag": "name=a, repetitiontype=OPTIONAL, type=INT64"},
			{"Tag": "name=b, repetitiontype=OPTIONAL, type=DOUBLE"},
			{"Tag": "name=c, repetitiontype=OPTIONAL, type=BOOLEAN"},
			{"Tag": "name=d, repetitiontype=OPTIONAL, type=UTF8, encoding=PLAIN_DICTIONARY"}
		]
	}`, s)
}

func Test_WriteFile_ExampleScenario(t *testing.T) {
	records, err := dataset.ReadJSON(strings.NewReader(`{"a":1,"to_be_dropped":"x"}
{"a":2,"to_be_dropped":"y"}
`))
	require.Nil(t, err)
	ds := dataset.New(records).Drop("to_be_dropped")

	path := filepath.Join(t.TempDir(), "part-00000.snappy.parquet")
	require.Nil(t, parquetio.WriteFile(path, ds))

	table, err := parquetio.ReadFile(path)
	require.Nil(t, err)

	assert.Equal(t, []string{"a"}, table.Columns)
	assert.Equal(t, int64(2), table.NumRows)
	require.Len(t, table.Rows, 2)

	values := []int64{table.Rows[0]["a"].Int64(), table.Rows[1]["a"].Int64()}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	assert.Equal(t, []int64{1, 2}, values)
}

func Test_WriteFile_AllKindsAndNulls(t *testing.T) {
	ds := dataset.New([]dataset.Record{
		{"id": 1, "name": "ada", "score": 9.5, "active": true},
		{"id": 2, "score": 7.25},
	})

	path := filepath.Join(t.TempDir(), "part.parquet")
	require.Nil(t, parquetio.WriteFile(path, ds))

	table, err := parquetio.ReadFile(path)
	require.Nil(t, err)

	columns := append([]string{}, table.Columns...)
	sort.Strings(columns)
	assert.Equal(t, []string{"active", "id", "name", "score"}, columns)
	assert.Equal(t, int64(2), table.NumRows)
	require.Len(t, table.Rows, 2)

	byID := map[int64]map[string]interface{}{}
	for _, row := range table.Rows {
		values := map[string]interface{}{}
		for name, value := range row {
			switch name {
			case "id":
				values[name] = value.Int64()
			case "score":
				values[name] = value.Double()
			case "active":
				values[name] = value.Boolean()
			default:
				values[name] = string(value.ByteArray())
			}
		}
		byID[row["id"].Int64()] = values
	}

	assert.Equal(t, map[string]interface{}{"id": int64(1), "name": "ada", "score": 9.5, "active": true}, byID[1])
	assert.Equal(t, map[string]interface{}{"id": int64(2), "score": 7.25}, byID[2])
}

func Test_WriteFile_StringColumns(t *testing.T) {
	records, err := dataset.ReadJSON(strings.NewReader(`{"a":{"b":[1,2]},"c":"é"}
{"a":1,"A":"x"}
not json
`))
	require.Nil(t, err)
	ds := dataset.New(records)

	path := filepath.Join(t.TempDir(), "part.parquet")
	require.Nil(t, parquetio.WriteFile(path, ds))

	table, err := parquetio.ReadFile(path)
	require.Nil(t, err)

	columns := append([]string{}, table.Columns...)
	sort.Strings(columns)
	assert.Equal(t, []string{"A", "_corrupt_record", "a", "c"}, columns)
	require.Len(t, table.Rows, 3)

	// nested values and numbers mixed with objects are kept as JSON text
	assert.Equal(t, `{"b":[1,2]}`, string(table.Rows[0]["a"].ByteArray()))
	assert.Equal(t, "é", string(table.Rows[0]["c"].ByteArray()))
	assert.Equal(t, "1", string(table.Rows[1]["a"].ByteArray()))
	assert.Equal(t, "x", string(table.Rows[1]["A"].ByteArray()))
	assert.Equal(t, "not json", string(table.Rows[2][dataset.CorruptRecordColumn].ByteArray()))
}

func Test_WriteFile_NoColumns(t *testing.T) {
	ds := dataset.New([]dataset.Record{{}})

	err := parquetio.WriteFile(filepath.Join(t.TempDir(), "part.parquet"), ds)
	assert.NotNil(t, err)
}
