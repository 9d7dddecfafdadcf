package diagram_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/familytree/pkg/diagram"
)

func ExampleWriteDiagram() {
	d := diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "junction-a-b", Kind: diagram.KindJunction, X: 215, Y: 240},
		},
		Edges: []diagram.Edge{
			{ID: "junction-junction-a-b-c", Source: "junction-a-b", Target: "c", Role: diagram.RoleParent},
		},
		Width:  215,
		Height: 240,
	}
	if err := diagram.WriteDiagram(d, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "junction-a-b",
	//       "kind": "junction",
	//       "x": 215,
	//       "y": 240,
	//       "generation": 0
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "id": "junction-junction-a-b-c",
	//       "source": "junction-a-b",
	//       "target": "c",
	//       "role": "parent"
	//     }
	//   ],
	//   "width": 215,
	//   "height": 240
	// }
}
