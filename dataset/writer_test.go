package dataset

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTableColumnsAndOrder(t *testing.T) {
	tbl := tableFromCSV(t, `example,Class,f1,f2,f3
a,1,1,2,3
b,0,4,5,6
`)

	var buf bytes.Buffer
	if err := tbl.WriteTable(&buf, []string{"f3", "f1"}, '\t'); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	header := strings.Split(lines[0], "\t")
	want := []string{"example", "Class", "f3", "f1"}
	if len(header) != len(want) {
		t.Fatalf("header = %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}
}

func TestWriteTableSkipsClassInFeatureList(t *testing.T) {
	tbl := tableFromCSV(t, `example,Class,f1
a,1,1
`)

	var buf bytes.Buffer
	if err := tbl.WriteTable(&buf, []string{ClassCol, "f1"}, ','); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	header := strings.Split(strings.SplitN(buf.String(), "\n", 2)[0], ",")
	n := 0
	for _, h := range header {
		if h == ClassCol {
			n++
		}
	}
	if n != 1 {
		t.Errorf("Class appears %d times in header, want exactly once", n)
	}
}

func TestWriteNamesExcludesClass(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNames(&buf, []string{"f2", ClassCol, "f1"}); err != nil {
		t.Fatalf("WriteNames: %v", err)
	}
	if got, want := buf.String(), "f2\nf1\n"; got != want {
		t.Errorf("WriteNames output = %q, want %q", got, want)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parts []string
		want  string
	}{
		{"plain", "/data/table.txt", nil, "table.txt_randomforest"},
		{"retain", "table.txt", []string{"", "10"}, "table.txt_randomforest_10"},
		{"replicate and param", "table.txt", []string{"cv3", "0.05", "10"}, "table.txt_randomforest_cv3_0.05_10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputName(tt.input, "randomforest", tt.parts...)
			if got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}
