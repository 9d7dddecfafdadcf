package io_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/io"
)

func ExampleReadJSON() {
	input := `[
		{"id": "ada", "name": "Ada", "gender": "female", "relations": {"childrenIds": ["cy"]}},
		{"id": "cy", "name": "Cy", "gender": "other", "relations": {"motherId": "ada", "childrenIds": []}}
	]`

	members, err := io.ReadJSON(strings.NewReader(input))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, m := range members {
		fmt.Println(m.ID, m.Name, m.Relations.ChildrenIDs)
	}
	// Output:
	// ada Ada [cy]
	// cy Cy []
}

func ExampleReadJSON_invalid() {
	_, err := io.ReadJSON(strings.NewReader(`{"nodes": []}`))
	fmt.Println(err)
	// Output:
	// invalid import input: top level must be an array of members
}

func ExampleWriteYAML() {
	members := []family.Member{
		{ID: "ada", Name: "Ada", Gender: family.Female, BirthDate: "1931"},
	}
	if err := io.WriteYAML(members, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// - id: ada
	//   name: Ada
	//   gender: female
	//   birthDate: "1931"
	//   relations:
	//     childrenIds: []
}
