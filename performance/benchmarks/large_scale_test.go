// Package benchmarks measures the regression pipeline's hot paths on
// synthetic housing data at sizes well beyond the bundled dataset.
package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/pipeline"
	"github.com/housefit/housefit/preprocessing"
)

var sizes = []struct {
	name    string
	samples int
}{
	{"10k_2", 10_000},
	{"100k_2", 100_000},
	{"1M_2", 1_000_000},
}

// syntheticMatrix generates housing-shaped numeric data: square footage,
// bedrooms and a noisy linear price.
func syntheticMatrix(samples int, seed uint64) (*mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewPCG(seed, seed))

	X := mat.NewDense(samples, 2, nil)
	y := mat.NewVecDense(samples, nil)
	for i := 0; i < samples; i++ {
		sqft := 800 + rng.Float64()*2700
		beds := float64(1 + rng.IntN(5))
		X.Set(i, 0, sqft)
		X.Set(i, 1, beds)
		y.SetVec(i, 50+0.1*sqft+15*beds+rng.NormFloat64()*20)
	}
	return X, y
}

// syntheticDataset generates the same data as raw CSV cells, with a missing
// price every thousandth row the way real exports have.
func syntheticDataset(samples int) *dataset.Dataset {
	rng := rand.New(rand.NewPCG(7, 7))

	ds := &dataset.Dataset{
		Columns: []string{"square_footage", "bedrooms", "price_thousands"},
		Rows:    make([][]string, samples),
	}
	for i := range ds.Rows {
		sqft := 800 + rng.Float64()*2700
		beds := 1 + rng.IntN(5)
		price := 50 + 0.1*sqft + 15*float64(beds) + rng.NormFloat64()*20

		row := []string{
			strconv.FormatFloat(sqft, 'f', 0, 64),
			strconv.Itoa(beds),
			strconv.FormatFloat(price, 'f', 2, 64),
		}
		if i%1000 == 999 {
			row[2] = ""
		}
		ds.Rows[i] = row
	}
	return ds
}

func BenchmarkFit(b *testing.B) {
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := syntheticMatrix(size.samples, 42)
			scaler := preprocessing.NewStandardScalerDefault()
			xScaled, err := scaler.FitTransform(X)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := linear.NewLinearRegression()
				if err := lr.Fit(xScaled, y); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.samples * 2 * 8))
		})
	}
}

func BenchmarkPredict(b *testing.B) {
	trainX, trainY := syntheticMatrix(2_000, 42)
	scaler := preprocessing.NewStandardScalerDefault()
	xScaled, err := scaler.FitTransform(trainX)
	if err != nil {
		b.Fatal(err)
	}
	lr := linear.NewLinearRegression()
	if err := lr.Fit(xScaled, trainY); err != nil {
		b.Fatal(err)
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, _ := syntheticMatrix(size.samples, 43)
			batch, err := scaler.Transform(X)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := lr.Predict(batch); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.samples * 2 * 8))
		})
	}
}

func BenchmarkStandardize(b *testing.B) {
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, _ := syntheticMatrix(size.samples, 42)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				scaler := preprocessing.NewStandardScalerDefault()
				if _, err := scaler.FitTransform(X); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.samples * 2 * 8))
		})
	}
}

func BenchmarkTrainTestSplit(b *testing.B) {
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := syntheticMatrix(size.samples, 42)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := dataset.TrainTestSplit(X, y, 0.2, 42); err != nil {
					b.Fatal(err)
				}
			}
			b.SetBytes(int64(size.samples * 3 * 8))
		})
	}
}

func BenchmarkClean(b *testing.B) {
	cols := []string{"square_footage", "bedrooms", "price_thousands"}

	// 1M string rows hold no extra insight over 100k and slow the suite.
	for _, size := range sizes[:2] {
		b.Run(size.name, func(b *testing.B) {
			ds := syntheticDataset(size.samples)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				clean, err := dataset.Clean(ds, cols, 3.0)
				if err != nil {
					b.Fatal(err)
				}
				if clean.NumRows() == 0 {
					b.Fatal("cleaning dropped every row")
				}
			}
		})
	}
}

// BenchmarkPipelineRun measures the full chain including CSV parsing.
func BenchmarkPipelineRun(b *testing.B) {
	path := writeSyntheticCSV(b, 10_000)
	cfg := config.Default()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := pipeline.Run(cfg, path); err != nil {
			b.Fatal(err)
		}
	}
}

func writeSyntheticCSV(b *testing.B, samples int) string {
	b.Helper()

	rng := rand.New(rand.NewPCG(11, 11))
	var sb strings.Builder
	sb.WriteString("square_footage,bedrooms,price_thousands\n")
	for i := 0; i < samples; i++ {
		sqft := 800 + rng.Float64()*2700
		beds := 1 + rng.IntN(5)
		price := 50 + 0.1*sqft + 15*float64(beds) + rng.NormFloat64()*20
		fmt.Fprintf(&sb, "%.0f,%d,%.2f\n", sqft, beds, price)
	}

	path := filepath.Join(b.TempDir(), "bench.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}
	return path
}
