package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVRenderer writes the timetable grid only
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (renderer *CSVRenderer) Render(document Document) ([]byte, error) {
	if len(document.Table.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one classroom column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.WriteAll(document.Table.Records()); err != nil {
		return nil, fmt.Errorf("write csv records: %w", err)
	}
	return buf.Bytes(), nil
}
