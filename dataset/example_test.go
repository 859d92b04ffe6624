package dataset_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/dataset"
)

func ExampleClean() {
	ds := &dataset.Dataset{
		Columns: []string{"square_footage", "bedrooms", "price_thousands"},
		Rows: [][]string{
			{"1000", "2", "150"},
			{"", "3", "200"},
			{"1500", "3", "210"},
			{"2000", "abc", "280"},
		},
	}

	cleaned, err := dataset.Clean(ds, []string{"square_footage", "bedrooms", "price_thousands"}, 3.0)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Rows before: %d\n", ds.NumRows())
	fmt.Printf("Rows after: %d\n", cleaned.NumRows())
	// Output:
	// Rows before: 4
	// Rows after: 2
}

func ExampleTrainTestSplit() {
	x := mat.NewDense(10, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	y := mat.NewVecDense(10, []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20})

	split, err := dataset.TrainTestSplit(x, y, 0.2, 42)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Training rows: %d\n", split.NumTrain())
	fmt.Printf("Test rows: %d\n", split.NumTest())
	// Output:
	// Training rows: 8
	// Test rows: 2
}

func ExampleDataset_FeatureMatrix() {
	ds := &dataset.Dataset{
		Columns: []string{"square_footage", "bedrooms", "price_thousands"},
		Rows: [][]string{
			{"1000", "2", "150"},
			{"1500", "3", "210"},
		},
	}

	x, err := ds.FeatureMatrix([]string{"square_footage", "bedrooms"})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	r, c := x.Dims()
	fmt.Printf("Feature matrix shape: (%d, %d)\n", r, c)
	fmt.Printf("First row: [%.0f, %.0f]\n", x.At(0, 0), x.At(0, 1))
	// Output:
	// Feature matrix shape: (2, 2)
	// First row: [1000, 2]
}
