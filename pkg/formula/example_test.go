package formula_test

import (
	"fmt"

	"github.com/matzehuels/absorb/pkg/formula"
)

func ExampleParse() {
	f, err := formula.Parse("YBa2Cu3O6.505")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range f {
		fmt.Printf("%s %.2f\n", c.Symbol, c.Occupancy)
	}
	// Output:
	// Y 1.00
	// Ba 2.00
	// Cu 3.00
	// O 6.51
}
