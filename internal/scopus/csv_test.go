package scopus

import (
	"strings"
	"testing"
)

const sampleCSV = `Authors,Title,Year,Authors with Affiliations,EID
"Smith J.; Lee K.","A Study",2021,"Smith, J., MIT, United States; Lee, K., KAIST, South Korea",2-s2.0-001
"Doe A.","Another Study",2020,"Doe, A., UBC, Canada",2-s2.0-002
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.EID != "2-s2.0-001" {
		t.Errorf("EID = %q", first.EID)
	}
	if first.Year != "2021" {
		t.Errorf("Year = %q", first.Year)
	}
	if first.Authors != "Smith J.; Lee K." {
		t.Errorf("Authors = %q", first.Authors)
	}
	if !strings.HasPrefix(first.AuthorsWithAffiliations, "Smith, J., MIT") {
		t.Errorf("AuthorsWithAffiliations = %q", first.AuthorsWithAffiliations)
	}
}

func TestParse_HeaderCaseInsensitive(t *testing.T) {
	csv := "AUTHORS,YEAR,AUTHORS WITH AFFILIATIONS,EID\n" +
		"\"Smith J.\",2021,\"Smith, J., MIT, United States\",x1\n"

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

func TestParse_BOMHeader(t *testing.T) {
	csv := "\uFEFFAuthors,Year,Authors with Affiliations,EID\n" +
		"\"Smith J.\",2021,\"Smith, J., MIT, United States\",x1\n"

	if _, err := Parse(strings.NewReader(csv)); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	csv := "Authors,Year,EID\n\"Smith J.\",2021,x1\n"

	_, err := Parse(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "authors with affiliations") {
		t.Errorf("Parse() error = %v, want missing-column error", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Error("Parse() succeeded on empty input")
	}
}

func TestParse_EmptyFieldsPassThrough(t *testing.T) {
	// Rows with blank fields still come back; the builder owns skipping.
	csv := "Authors,Year,Authors with Affiliations,EID\n" +
		",,\"Smith, J., MIT, United States\",x1\n"

	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Validate() == nil {
		t.Error("record with blank fields unexpectedly validates")
	}
}
