package record

import "testing"

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		EID:                     "2-s2.0-001",
		Year:                    "2021",
		Authors:                 "Smith J.; Lee K.",
		AuthorsWithAffiliations: "Smith J., MIT, United States; Lee K., KAIST, South Korea",
	}

	tests := []struct {
		name    string
		mutate  func(r *Record)
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(r *Record) {},
			wantErr: nil,
		},
		{
			name:    "missing eid",
			mutate:  func(r *Record) { r.EID = "" },
			wantErr: ErrMissingEID,
		},
		{
			name:    "whitespace-only eid",
			mutate:  func(r *Record) { r.EID = "   " },
			wantErr: ErrMissingEID,
		},
		{
			name:    "missing year",
			mutate:  func(r *Record) { r.Year = "" },
			wantErr: ErrMissingYear,
		},
		{
			name:    "missing authors",
			mutate:  func(r *Record) { r.Authors = "" },
			wantErr: ErrMissingAuthors,
		},
		{
			name:    "missing affiliations",
			mutate:  func(r *Record) { r.AuthorsWithAffiliations = "" },
			wantErr: ErrMissingAffiliations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
