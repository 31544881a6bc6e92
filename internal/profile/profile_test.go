package profile_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ferdiebergado/devconnector/internal/platform/validation"
	"github.com/ferdiebergado/devconnector/internal/profile"
)

func TestSkills_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    profile.Skills
		wantErr bool
	}{
		{name: "array", input: `["Go", " SQL "]`, want: profile.Skills{"Go", "SQL"}},
		{name: "comma-separated string", input: `"Go, React ,  Docker"`, want: profile.Skills{"Go", "React", "Docker"}},
		{name: "blank entries are dropped", input: `"Go,,  ,SQL"`, want: profile.Skills{"Go", "SQL"}},
		{name: "empty string", input: `""`, want: profile.Skills{}},
		{name: "null", input: `null`, want: nil},
		{name: "number", input: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got profile.Skills
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(%s) = %v, wantErr: %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("skills = %#v, want: %#v", got, tt.want)
			}
		})
	}
}

func TestSaveRequest_Validation(t *testing.T) {
	t.Parallel()

	v := validation.NewGoPlaygroundValidator()

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name: "valid",
			body: `{"status":"Developer","skills":"Go,SQL","website":"https://example.com","github":"https://github.com/jane"}`,
		},
		{
			name:       "missing status and skills",
			body:       `{}`,
			wantFields: []string{"status", "skills"},
		},
		{
			name:       "skills that trim to nothing",
			body:       `{"status":"Developer","skills":" , "}`,
			wantFields: []string{"skills"},
		},
		{
			name:       "non-http urls",
			body:       `{"status":"Developer","skills":["Go"],"website":"ftp://example.com","twitter":"not a url"}`,
			wantFields: []string{"website", "twitter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req profile.SaveRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatal(err)
			}

			errs := v.ValidateStruct(req)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("v.ValidateStruct() = %v, want errors for: %v", errs, tt.wantFields)
			}

			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("errs[%q] missing in %v", field, errs)
				}
			}
		})
	}
}

func TestSocial_Scan(t *testing.T) {
	t.Parallel()

	var s profile.Social
	if err := s.Scan(`{"twitter":"https://x.com/jane","github":"https://github.com/jane"}`); err != nil {
		t.Fatal(err)
	}

	want := profile.Social{Twitter: "https://x.com/jane", GitHub: "https://github.com/jane"}
	if s != want {
		t.Errorf("s = %+v, want: %+v", s, want)
	}

	if err := s.Scan(nil); err != nil || s != (profile.Social{}) {
		t.Errorf("s.Scan(nil) = %v, s = %+v, want zero value", err, s)
	}

	if err := s.Scan(42); err == nil {
		t.Error("s.Scan(42) = nil, want: error")
	}
}
