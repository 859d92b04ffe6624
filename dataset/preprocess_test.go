package dataset_test

import (
	"testing"

	"github.com/housefit/housefit/dataset"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
)

var requiredCols = []string{"square_footage", "bedrooms", "price_thousands"}

func TestCleanDropsIncompleteRows(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"square_footage", "bedrooms", "price_thousands", "notes"},
		Rows: [][]string{
			{"1000", "2", "150", "ok"},
			{"", "3", "200", "blank square_footage"},
			{"1500", "abc", "210", "non-numeric bedrooms"},
			{"1600", "3", "", "blank price"},
			{" 1400 ", "2", "180", "padded cells parse fine"},
			{"1750", "4", "260", "N/A"},
		},
	}

	out, err := dataset.Clean(ds, requiredCols, 3.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	// Rows 1, 2 and 3 have a missing required value; junk in the extra
	// notes column does not matter.
	if out.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", out.NumRows())
	}

	wantSqft := []string{"1000", " 1400 ", "1750"}
	for i, want := range wantSqft {
		if out.Rows[i][0] != want {
			t.Errorf("Rows[%d][0] = %q, want %q (raw cells preserved)", i, out.Rows[i][0], want)
		}
	}
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"square_footage", "bedrooms", "price_thousands"},
		Rows: [][]string{
			{"1000", "2", "150"},
			{"", "3", "200"},
		},
	}

	_, err := dataset.Clean(ds, requiredCols, 3.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if ds.NumRows() != 2 {
		t.Errorf("input NumRows() = %d, want 2 (unchanged)", ds.NumRows())
	}
	if ds.Rows[1][0] != "" {
		t.Errorf("input Rows[1][0] = %q, want empty (unchanged)", ds.Rows[1][0])
	}
}

func TestCleanDropsSingleOutlier(t *testing.T) {
	// Eleven identical values and one extreme one. With the sample standard
	// deviation a lone outlier needs n >= 12 before it can exceed 3 sigma:
	// mean = 92.5, std = sqrt(898425/11) ≈ 285.79, and |1000 - 92.5| = 907.5
	// is just past 3*std ≈ 857.4.
	rows := make([][]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, []string{"10"})
	}
	rows = append(rows, []string{"1000"})

	ds := &dataset.Dataset{Columns: []string{"x"}, Rows: rows}

	out, err := dataset.Clean(ds, []string{"x"}, 3.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 11 {
		t.Fatalf("NumRows() = %d, want 11", out.NumRows())
	}
	for i, row := range out.Rows {
		if row[0] != "10" {
			t.Errorf("Rows[%d][0] = %q, want %q", i, row[0], "10")
		}
	}
}

func TestCleanOutlierPassesRunSequentially(t *testing.T) {
	// With sigma=1 and column order [a, b]: the a-pass drops the last row
	// (a=10 is past one std of [0,0,0,0,10]), and the b-pass then runs on
	// the survivors' b values [0,0,0,3], whose tighter std 1.5 drops b=3.
	// Filtering b against the full column [0,0,0,3,20] would have kept it.
	ds := &dataset.Dataset{
		Columns: []string{"a", "b"},
		Rows: [][]string{
			{"0", "0"},
			{"0", "0"},
			{"0", "0"},
			{"0", "3"},
			{"10", "20"},
		},
	}

	out, err := dataset.Clean(ds, []string{"a", "b"}, 1.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", out.NumRows())
	}
	for i, row := range out.Rows {
		if row[0] != "0" || row[1] != "0" {
			t.Errorf("Rows[%d] = %v, want [0 0]", i, row)
		}
	}
}

func TestCleanColumnOrderMatters(t *testing.T) {
	// Same data as the sequential test, opposite order. The b-pass on the
	// full column [0,0,0,3,20] drops only b=20; the a-pass then sees
	// [0,0,0,0], a zero-deviation column, and drops nothing. Four rows
	// survive instead of three.
	ds := &dataset.Dataset{
		Columns: []string{"a", "b"},
		Rows: [][]string{
			{"0", "0"},
			{"0", "0"},
			{"0", "0"},
			{"0", "3"},
			{"10", "20"},
		},
	}

	out, err := dataset.Clean(ds, []string{"b", "a"}, 1.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 4 {
		t.Fatalf("NumRows() = %d, want 4", out.NumRows())
	}
	if out.Rows[3][1] != "3" {
		t.Errorf("Rows[3][1] = %q, want %q", out.Rows[3][1], "3")
	}
}

func TestCleanZeroDeviationColumn(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"x"},
		Rows: [][]string{
			{"5"},
			{"5"},
			{"5"},
		},
	}

	out, err := dataset.Clean(ds, []string{"x"}, 0.001)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3 (zero-deviation column drops nothing)", out.NumRows())
	}
}

func TestCleanSingleRow(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"x"},
		Rows:    [][]string{{"42"}},
	}

	out, err := dataset.Clean(ds, []string{"x"}, 3.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 1 {
		t.Errorf("NumRows() = %d, want 1 (outlier pass needs at least two rows)", out.NumRows())
	}
}

func TestCleanCanEmptyTheDataset(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"x"},
		Rows: [][]string{
			{""},
			{"junk"},
		},
	}

	out, err := dataset.Clean(ds, []string{"x"}, 3.0)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if out.NumRows() != 0 {
		t.Errorf("NumRows() = %d, want 0", out.NumRows())
	}
}

func TestCleanMissingColumn(t *testing.T) {
	ds := sampleDataset()

	_, err := dataset.Clean(ds, []string{"square_footage", "bathrooms"}, 3.0)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !housefitErrors.Is(err, housefitErrors.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn in chain, got %v", err)
	}
}
