package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/model"
)

type Profile struct {
	model.Model

	UserID  string
	Status  string
	Skills  []string
	Bio     string
	Website string
	Social  Social

	// Populated from the owning user on reads.
	UserName   string
	UserAvatar string
}

// Social is stored as a single JSONB column.
type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

func (s Social) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal social links: %w", err)
	}
	return b, nil
}

func (s *Social) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*s = Social{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("scan social links: unsupported type %T", src)
	}
	return json.Unmarshal(b, s)
}

// Skills decodes from either a JSON array of strings or a single
// comma-separated string. Entries are trimmed and blanks dropped.
type Skills []string

func (s *Skills) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*s = cleanSkills(list)
		return nil
	}

	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return errors.New("skills must be an array of strings or a comma-separated string")
	}
	*s = cleanSkills(strings.Split(csv, ","))
	return nil
}

func cleanSkills(raw []string) Skills {
	out := make(Skills, 0, len(raw))
	for _, skill := range raw {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
