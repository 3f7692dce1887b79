// Package parser reads the CSV tables describing an offloading network: its
// links, its nodes and its applications. Columns are located by their header
// name so that their order does not matter and extra columns are ignored.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/offloadnet/offloading-net/model"
)

// Names of the tables, used in errors.
const (
	TableLinks        = "links"
	TableNodes        = "nodes"
	TableApplications = "applications"
)

var (
	// ErrMissingHeader is reported when a table has no header row.
	ErrMissingHeader = errors.New("missing header")

	// ErrMissingColumn is reported when a required column is absent.
	ErrMissingColumn = errors.New("missing column")

	// ErrMissingValue is reported when a row is too short to hold a column.
	ErrMissingValue = errors.New("missing value")
)

// DataFormatError reports a table that cannot be read: a missing column, a
// short row, or a value that is not a number where one is expected.
type DataFormatError struct {
	Table  string
	Column string // empty if the error concerns the whole table
	Line   int    // 0 if the error concerns the whole table
	Err    error
}

func (e *DataFormatError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(e.Table)
	sb.WriteString(" table")
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d", e.Line))
	}
	if e.Column != "" {
		sb.WriteString(fmt.Sprintf(": column %q", e.Column))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// ReadLinks reads the links table at filepath.
func ReadLinks(filepath string) ([]model.Link, error) {
	return readFile(filepath, ParseLinks)
}

// ParseLinks parses a links table with columns original, connected, bitrate
// and delay.
func ParseLinks(r io.Reader) ([]model.Link, error) {
	t, err := readTable(TableLinks, r, "original", "connected", "bitrate", "delay")
	if err != nil {
		return nil, err
	}

	links := make([]model.Link, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		from, err := t.nodeID(i, "original")
		if err != nil {
			return nil, err
		}
		to, err := t.nodeID(i, "connected")
		if err != nil {
			return nil, err
		}
		bitrate, err := t.float(i, "bitrate")
		if err != nil {
			return nil, err
		}
		delay, err := t.float(i, "delay")
		if err != nil {
			return nil, err
		}
		links = append(links, model.Link{
			Original:  from,
			Connected: to,
			Bitrate:   bitrate,
			Delay:     delay,
		})
	}

	return links, nil
}

// ReadNodes reads the nodes table at filepath.
func ReadNodes(filepath string) ([]model.Node, error) {
	return readFile(filepath, ParseNodes)
}

// ParseNodes parses a nodes table with columns type, clock and cores. Nodes
// are identified by their row number starting from 1.
func ParseNodes(r io.Reader) ([]model.Node, error) {
	t, err := readTable(TableNodes, r, "type", "clock", "cores")
	if err != nil {
		return nil, err
	}

	nodes := make([]model.Node, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		typ, err := t.integer(i, "type")
		if err != nil {
			return nil, err
		}
		clock, err := t.float(i, "clock")
		if err != nil {
			return nil, err
		}
		cores, err := t.integer(i, "cores")
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, model.Node{
			ID:    i + 1,
			Type:  typ,
			Clock: clock,
			Cores: cores,
		})
	}

	return nodes, nil
}

// ReadApplications reads the applications table at filepath.
func ReadApplications(filepath string) ([]model.Application, error) {
	return readFile(filepath, ParseApplications)
}

// ParseApplications parses an applications table with columns app, cost,
// data_in, data_out, max_delay, rate and info.
func ParseApplications(r io.Reader) ([]model.Application, error) {
	t, err := readTable(TableApplications, r,
		"app", "cost", "data_in", "data_out", "max_delay", "rate", "info")
	if err != nil {
		return nil, err
	}

	apps := make([]model.Application, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		id, err := t.integer(i, "app")
		if err != nil {
			return nil, err
		}
		var values [5]float64
		for k, col := range []string{"cost", "data_in", "data_out", "max_delay", "rate"} {
			if values[k], err = t.float(i, col); err != nil {
				return nil, err
			}
		}
		info, err := t.str(i, "info")
		if err != nil {
			return nil, err
		}
		apps = append(apps, model.Application{
			ID:       id,
			Cost:     values[0],
			DataIn:   values[1],
			DataOut:  values[2],
			MaxDelay: values[3],
			Rate:     values[4],
			Info:     info,
		})
	}

	return apps, nil
}

func readFile[T any](filepath string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parse(file)
}

// table is a CSV table whose header has been indexed.
type table struct {
	name    string
	columns map[string]int
	records [][]string
	lines   []int // line of each record in the input
}

func readTable(name string, r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows are reported per column
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Table: name, Err: ErrMissingHeader}
	}
	if err != nil {
		return nil, &DataFormatError{Table: name, Err: err}
	}

	t := &table{name: name, columns: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, ok := t.columns[col]; !ok {
			t.columns[col] = i
		}
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, &DataFormatError{Table: name, Column: col, Err: ErrMissingColumn}
		}
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataFormatError{Table: name, Err: err}
		}
		line, _ := reader.FieldPos(0)
		t.records = append(t.records, rec)
		t.lines = append(t.lines, line)
	}

	return t, nil
}

func (t *table) rows() int {
	return len(t.records)
}

func (t *table) fieldError(row int, col string, err error) error {
	return &DataFormatError{Table: t.name, Column: col, Line: t.lines[row], Err: err}
}

func (t *table) str(row int, col string) (string, error) {
	i := t.columns[col]
	rec := t.records[row]
	if i >= len(rec) {
		return "", t.fieldError(row, col, ErrMissingValue)
	}
	return strings.TrimSpace(rec[i]), nil
}

func (t *table) float(row int, col string) (float64, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.fieldError(row, col, fmt.Errorf("not a number: %q", s))
	}
	return f, nil
}

// integer parses an integer value. Values written as floats with no fractional
// part, such as "4.0", are accepted.
func (t *table) integer(row int, col string) (int, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, t.fieldError(row, col, fmt.Errorf("not an integer: %q", s))
	}
	return int(f), nil
}

func (t *table) nodeID(row int, col string) (int, error) {
	id, err := t.integer(row, col)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, t.fieldError(row, col, fmt.Errorf("negative node ID: %d", id))
	}
	return id, nil
}
