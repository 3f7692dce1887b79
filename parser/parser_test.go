package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/offloadnet/offloading-net/model"
)

func TestParseLinks(t *testing.T) {
	testCases := []struct {
		desc  string
		input string
		want  []model.Link
	}{
		{
			desc:  "header only",
			input: "original,connected,bitrate,delay\n",
			want:  []model.Link{},
		},
		{
			desc: "two links",
			input: "original,connected,bitrate,delay\n" +
				"1,2,1000,0.5\n" +
				"2,3,100.5,2\n",
			want: []model.Link{
				{Original: 1, Connected: 2, Bitrate: 1000, Delay: 0.5},
				{Original: 2, Connected: 3, Bitrate: 100.5, Delay: 2},
			},
		},
		{
			desc: "columns in any order with an index column",
			input: ",delay,bitrate,connected,original\n" +
				"0, 1, 10, 5, 4\n",
			want: []model.Link{
				{Original: 4, Connected: 5, Bitrate: 10, Delay: 1},
			},
		},
		{
			desc: "integer IDs written as floats",
			input: "original,connected,bitrate,delay\n" +
				"1.0,2.0,1,1\n",
			want: []model.Link{
				{Original: 1, Connected: 2, Bitrate: 1, Delay: 1},
			},
		},
		{
			desc: "byte order mark and blank lines",
			input: "\ufefforiginal,connected,bitrate,delay\n" +
				"\n" +
				"1,2,3,4\n" +
				"\n",
			want: []model.Link{
				{Original: 1, Connected: 2, Bitrate: 3, Delay: 4},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParseLinks(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ParseLinks(): want no error, got %s", err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseLinks(): mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLinks_errors(t *testing.T) {
	testCases := []struct {
		desc       string
		input      string
		wantColumn string
		wantLine   int
		wantErr    error
	}{
		{
			desc:    "empty input",
			input:   "",
			wantErr: ErrMissingHeader,
		},
		{
			desc:       "missing column",
			input:      "original,connected,bitrate\n1,2,3\n",
			wantColumn: "delay",
			wantErr:    ErrMissingColumn,
		},
		{
			desc:       "short row",
			input:      "original,connected,bitrate,delay\n1,2,3,4\n1,2\n",
			wantColumn: "bitrate",
			wantLine:   3,
			wantErr:    ErrMissingValue,
		},
		{
			desc:       "not a number",
			input:      "original,connected,bitrate,delay\n1,2,fast,4\n",
			wantColumn: "bitrate",
			wantLine:   2,
		},
		{
			desc:       "fractional node ID",
			input:      "original,connected,bitrate,delay\n1.5,2,3,4\n",
			wantColumn: "original",
			wantLine:   2,
		},
		{
			desc:       "negative node ID",
			input:      "original,connected,bitrate,delay\n1,-2,3,4\n",
			wantColumn: "connected",
			wantLine:   2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := ParseLinks(strings.NewReader(tc.input))

			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("ParseLinks(): want *DataFormatError, got %v", err)
			}
			if dfe.Table != TableLinks {
				t.Errorf("Table: want %q, got %q", TableLinks, dfe.Table)
			}
			if dfe.Column != tc.wantColumn {
				t.Errorf("Column: want %q, got %q", tc.wantColumn, dfe.Column)
			}
			if dfe.Line != tc.wantLine {
				t.Errorf("Line: want %d, got %d", tc.wantLine, dfe.Line)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseLinks(): want error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseNodes(t *testing.T) {
	input := "type,clock,cores\n" +
		"1,3.5,16\n" +
		"2,2.4,8\n" +
		"4,1.2,2\n"
	want := []model.Node{
		{ID: 1, Type: 1, Clock: 3.5, Cores: 16},
		{ID: 2, Type: 2, Clock: 2.4, Cores: 8},
		{ID: 3, Type: 4, Clock: 1.2, Cores: 2},
	}

	got, err := ParseNodes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseNodes(): want no error, got %s", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseNodes(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNodes_missingColumn(t *testing.T) {
	_, err := ParseNodes(strings.NewReader("type,clock\n1,2\n"))

	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("ParseNodes(): want *DataFormatError, got %v", err)
	}
	want := `nodes table: column "cores": missing column`
	if got := dfe.Error(); got != want {
		t.Errorf("Error(): want %q, got %q", want, got)
	}
}

func TestParseApplications(t *testing.T) {
	input := "app,cost,data_in,data_out,max_delay,rate,info\n" +
		"1,100,0.5,0.1,20,0.2,Augmented reality\n" +
		"2,\"1,5\",1,1,50,0.1,\"Video, HD\"\n"

	_, err := ParseApplications(strings.NewReader(input))
	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("ParseApplications(): want *DataFormatError, got %v", err)
	}
	want := `applications table: line 3: column "cost": not a number: "1,5"`
	if got := dfe.Error(); got != want {
		t.Errorf("Error(): want %q, got %q", want, got)
	}

	input = strings.Replace(input, `"1,5"`, "1.5", 1)
	got, err := ParseApplications(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseApplications(): want no error, got %s", err)
	}
	wantApps := []model.Application{
		{ID: 1, Cost: 100, DataIn: 0.5, DataOut: 0.1, MaxDelay: 20, Rate: 0.2, Info: "Augmented reality"},
		{ID: 2, Cost: 1.5, DataIn: 1, DataOut: 1, MaxDelay: 50, Rate: 0.1, Info: "Video, HD"},
	}
	if diff := cmp.Diff(wantApps, got); diff != "" {
		t.Errorf("ParseApplications(): mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.csv")
	content := "original,connected,bitrate,delay\n1,2,10,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadLinks(path)
	if err != nil {
		t.Fatalf("ReadLinks(): want no error, got %s", err)
	}
	want := []model.Link{{Original: 1, Connected: 2, Bitrate: 10, Delay: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadLinks(): mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLinks_missingFile(t *testing.T) {
	_, err := ReadLinks(filepath.Join(t.TempDir(), "missing.csv"))

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadLinks(): want os.ErrNotExist, got %v", err)
	}
}
