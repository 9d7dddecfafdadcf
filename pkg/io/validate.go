package io

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a member list against the interchange rules and returns
// an [errors.ImportFormatError] listing every problem, or nil.
func Validate(members []family.Member, source string) error {
	var problems []string
	seen := make(map[string]int, len(members))

	for i, m := range members {
		at := fmt.Sprintf("element %d", i)
		if m.ID != "" {
			at = fmt.Sprintf("element %d (%s)", i, m.ID)
		}

		if err := validate.Struct(m); err != nil {
			problems = append(problems, fieldProblems(at, err)...)
		}
		if m.ID == "" {
			continue
		}

		if j, dup := seen[m.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate id, first used by element %d", at, j))
		} else {
			seen[m.ID] = i
		}

		rel := m.Relations
		if rel.FatherID == m.ID || rel.MotherID == m.ID {
			problems = append(problems, fmt.Sprintf("%s: member is its own parent", at))
		}
		if rel.SpouseID == m.ID {
			problems = append(problems, fmt.Sprintf("%s: member is its own spouse", at))
		}
		children := make(map[string]bool, len(rel.ChildrenIDs))
		for _, cid := range rel.ChildrenIDs {
			switch {
			case cid == m.ID:
				problems = append(problems, fmt.Sprintf("%s: childrenIds contains the member itself", at))
			case cid == "":
				problems = append(problems, fmt.Sprintf("%s: childrenIds contains an empty id", at))
			case children[cid]:
				problems = append(problems, fmt.Sprintf("%s: childrenIds lists %s twice", at, cid))
			}
			children[cid] = true
		}
	}

	if len(problems) > 0 {
		return &errors.ImportFormatError{Source: source, Problems: problems}
	}
	return nil
}

func fieldProblems(at string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{fmt.Sprintf("%s: %v", at, err)}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s: %s is required", at, fe.Field()))
		case "oneof":
			out = append(out, fmt.Sprintf("%s: %s must be one of %s, got %q", at, fe.Field(), fe.Param(), fe.Value()))
		default:
			out = append(out, fmt.Sprintf("%s: %s failed rule %s", at, fe.Field(), fe.Tag()))
		}
	}
	return out
}
