package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"datasight/domain/core"
	"datasight/domain/table"
)

// delimiterCandidates in preference order for ties
var delimiterCandidates = []rune{',', ';', '\t', '|'}

const sniffLines = 5

// SniffDelimiter picks the delimiter for free-form text. A candidate that
// appears the same number of times on each of the first lines wins over one
// that does not; higher counts win next. Defaults to comma.
func SniffDelimiter(data []byte) rune {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() && len(lines) < sniffLines {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ','
	}

	best, bestCount, bestConsistent := ',', 0, false
	for _, d := range delimiterCandidates {
		first := strings.Count(lines[0], string(d))
		if first == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(d)) != first {
				consistent = false
				break
			}
		}
		better := (consistent && !bestConsistent) ||
			(consistent == bestConsistent && first > bestCount)
		if bestCount == 0 || better {
			best, bestCount, bestConsistent = d, first, consistent
		}
	}
	return best
}

func (l *Loader) readDelimited(data []byte, name string, delim rune) (*table.Table, error) {
	format := "csv"
	if delim != ',' {
		format = fmt.Sprintf("delimited text (%q)", delim)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.NewLoadError(format, errors.New("no header row"))
	}
	if err != nil {
		return nil, core.NewLoadError(format, err)
	}

	var rows [][]table.Value
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewLoadError(format, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" && len(header) > 1 {
			continue
		}
		if len(record) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, core.NewLoadError(format,
				fmt.Errorf("line %d has %d fields, header has %d", line, len(record), len(header)))
		}
		row := make([]table.Value, len(record))
		for j, cell := range record {
			row[j] = l.coercer.CoerceString(cell)
		}
		rows = append(rows, row)
	}

	return assemble(name, header, rows)
}
