package sheet_test

import (
	"fmt"

	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/sheet"
)

type note string

func (n note) Key() string { return string(n) }

func ExampleSheet() {
	s := sheet.New[note]("board", grid.NewRect(grid.P(-3, -3), grid.P(3, 3)))

	fmt.Println(s.Add("todo", grid.P(0, 0), grid.DefaultLayer))
	fmt.Println(s.Add("done", grid.P(0, 0), grid.DefaultLayer)) // occupied
	fmt.Println(s.Add("done", grid.P(1, 0), grid.DefaultLayer))
	fmt.Println(s.Add("far", grid.P(9, 9), grid.DefaultLayer)) // out of bounds

	p, _, _ := s.Locate("done")
	fmt.Println("done at", p)
	fmt.Println("items:", s.Items())
	// Output:
	// true
	// false
	// true
	// false
	// done at (1,0)
	// items: [todo done]
}
