package io

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

func sampleMembers() []family.Member {
	return []family.Member{
		{
			ID: "ada", Name: "Ada", Gender: family.Female, BirthDate: "1931-04-02", DeathDate: "2004",
			Relations: family.Relations{SpouseID: "bob", ChildrenIDs: []string{"cy"}},
		},
		{
			ID: "bob", Name: "Bob", Gender: family.Male,
			Relations: family.Relations{SpouseID: "ada", ChildrenIDs: []string{"cy"}},
		},
		{
			ID: "cy", Name: "Cy", Gender: family.Other, BirthDate: "1960",
			Relations: family.Relations{FatherID: "bob", MotherID: "ada", ChildrenIDs: []string{}},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	members := sampleMembers()

	var buf bytes.Buffer
	if err := WriteJSON(members, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, members) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, members)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	members := sampleMembers()

	var buf bytes.Buffer
	if err := WriteYAML(members, &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML: %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(got, members) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, members)
	}
}

func TestFileRoundTrip(t *testing.T) {
	for _, name := range []string{"family.json", "family.yaml", "family.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Export(sampleMembers(), path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if !reflect.DeepEqual(got, sampleMembers()) {
				t.Errorf("round trip mismatch: %+v", got)
			}
		})
	}
}

func TestWriteJSONShape(t *testing.T) {
	members := []family.Member{{ID: "a", Name: "A", Gender: family.Male}}

	var buf bytes.Buffer
	if err := WriteJSON(members, &buf); err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "id": "a",
    "name": "A",
    "gender": "male",
    "relations": {
      "childrenIds": []
    }
  }
]
`
	if buf.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", buf.String(), want)
	}
	if members[0].Relations.ChildrenIDs != nil {
		t.Error("WriteJSON modified its input")
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("WriteJSON(nil) = %q", buf.String())
	}
}

func TestReadJSONRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", ``, "top level must be an array"},
		{"object", `{"id":"a"}`, "top level must be an array"},
		{"null", `null`, "top level must be an array"},
		{"malformed", `[{"id":`, "unexpected EOF"},
		{"trailing data", `[] []`, "unexpected data"},
		{"unknown field", `[{"id":"a","name":"A","gender":"male","nickname":"x","relations":{"childrenIds":[]}}]`, "unknown field"},
		{"missing id", `[{"name":"A","gender":"male","relations":{"childrenIds":[]}}]`, "id is required"},
		{"missing name", `[{"id":"a","gender":"male","relations":{"childrenIds":[]}}]`, "name is required"},
		{"bad gender", `[{"id":"a","name":"A","gender":"robot","relations":{"childrenIds":[]}}]`, "gender must be one of"},
		{"null element", `[null]`, "id is required"},
		{"self child", `[{"id":"a","name":"A","gender":"male","relations":{"childrenIds":["a"]}}]`, "member itself"},
		{"self parent", `[{"id":"a","name":"A","gender":"male","relations":{"fatherId":"a","childrenIds":[]}}]`, "own parent"},
		{"self spouse", `[{"id":"a","name":"A","gender":"male","relations":{"spouseId":"a","childrenIds":[]}}]`, "own spouse"},
		{"duplicate child", `[{"id":"a","name":"A","gender":"male","relations":{"childrenIds":["b","b"]}}]`, "twice"},
		{"duplicate id", `[{"id":"a","name":"A","gender":"male","relations":{}},{"id":"a","name":"B","gender":"male","relations":{}}]`, "duplicate id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("ReadJSON(%q) succeeded", tt.input)
			}
			if got != nil {
				t.Errorf("ReadJSON returned members on error: %v", got)
			}
			var ife *errors.ImportFormatError
			if !stderrors.As(err, &ife) {
				t.Fatalf("error %v is not an ImportFormatError", err)
			}
			if ife.Code() != errors.ErrCodeInvalidFormat {
				t.Errorf("Code() = %v", ife.Code())
			}
			if !strings.Contains(strings.Join(ife.Problems, "; "), tt.want) {
				t.Errorf("problems %q do not mention %q", ife.Problems, tt.want)
			}
		})
	}
}

func TestReadJSONCollectsAllProblems(t *testing.T) {
	input := `[{"id":"a","gender":"male","relations":{}},{"name":"B","gender":"x","relations":{}}]`
	_, err := ReadJSON(strings.NewReader(input))

	var ife *errors.ImportFormatError
	if !stderrors.As(err, &ife) {
		t.Fatalf("err = %v", err)
	}
	if len(ife.Problems) != 3 {
		t.Errorf("problems = %q, want 3", ife.Problems)
	}
}

func TestReadJSONTolerates(t *testing.T) {
	input := `[
		{"id":"a","name":"A","gender":"female","birthDate":"sometime","relations":{"fatherId":"ghost"}},
		{"id":"b","name":"B","gender":"other","relations":{"childrenIds":["nobody"]}}
	]`
	got, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != 2 || got[0].Relations.ChildrenIDs == nil {
		t.Errorf("members = %+v", got)
	}
}

func TestReadYAMLRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"mapping", "id: a\nname: A\n"},
		{"unknown field", "- id: a\n  name: A\n  gender: male\n  hobby: chess\n"},
		{"bad gender", "- id: a\n  name: A\n  gender: none\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.input))
			if !isImportFormat(err) {
				t.Errorf("ReadYAML(%q) error = %v, want ImportFormatError", tt.input, err)
			}
		})
	}
}

func isImportFormat(err error) bool {
	var ife *errors.ImportFormatError
	return stderrors.As(err, &ife)
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"tree.json", FormatJSON},
		{"tree.YAML", FormatYAML},
		{"tree.yml", FormatYAML},
		{"tree", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}
