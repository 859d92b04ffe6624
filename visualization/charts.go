package visualization

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"time"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/pipeline"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// linePoints is the sampling resolution of a regression line.
const linePoints = 100

// PlotFeatureFits renders one panel per feature: the training scatter in
// red, the test scatter in green, and the model's regression line in blue.
// The line varies the panel's feature over its observed range while holding
// every other feature at its training mean. The panels are saved
// side by side as a single PNG at path.
func PlotFeatureFits(cfg config.Config, split *dataset.SplitResult, result *pipeline.EvaluationResult, path string) (err error) {
	defer housefitErrors.Recover(&err, "visualization.PlotFeatureFits")

	startTime := time.Now()
	features := result.Formula.Features
	trainMeans := columnMeans(split.XTrain)

	panels := make([]*plot.Plot, len(features))
	for j := range features {
		panel, perr := featurePanel(cfg, split, result, j, trainMeans)
		if perr != nil {
			return perr
		}
		panels[j] = panel
	}

	img := vgimg.NewWith(vgimg.UseWH(
		vg.Length(cfg.FigWidthInches)*vg.Inch,
		vg.Length(cfg.FigHeightInches)*vg.Inch,
	))
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(features),
		PadX:      vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{panels}, tiles, draw.New(img))
	for j, panel := range panels {
		panel.Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return housefitErrors.Wrapf(err, "housefit: cannot create chart file %s", path)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return housefitErrors.Wrapf(err, "housefit: cannot write chart %s", path)
	}

	log.GetLoggerWithName("visualization").Info("Feature fit chart saved",
		log.PathKey, path,
		log.FeaturesKey, len(features),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)
	return nil
}

// featurePanel builds the scatter-plus-line panel for one feature.
func featurePanel(cfg config.Config, split *dataset.SplitResult, result *pipeline.EvaluationResult, j int, trainMeans []float64) (*plot.Plot, error) {
	feature := result.Formula.Features[j]
	target := result.Formula.Target

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", titleCase(target), titleCase(feature))
	p.X.Label.Text = titleCase(feature)
	p.Y.Label.Text = titleCase(target)
	p.Add(plotter.NewGrid())

	train, err := columnScatter(split.XTrain, split.YTrain, j, trainColor(cfg.ScatterAlpha))
	if err != nil {
		return nil, err
	}
	p.Add(train)
	p.Legend.Add("Training data", train)

	test, err := columnScatter(split.XTest, split.YTest, j, testColor(cfg.ScatterAlpha))
	if err != nil {
		return nil, err
	}
	p.Add(test)
	p.Legend.Add("Test data", test)

	line, err := regressionLine(split, result, j, trainMeans)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	p.Legend.Add("Regression line", line)
	p.Legend.Top = true

	return p, nil
}

// regressionLine predicts the target along one feature's observed range with
// the remaining features pinned to their training means.
func regressionLine(split *dataset.SplitResult, result *pipeline.EvaluationResult, j int, trainMeans []float64) (*plotter.Line, error) {
	lo, hi := columnRange(split, j)
	xs := make([]float64, linePoints)
	floats.Span(xs, lo, hi)

	nFeatures := len(trainMeans)
	lineX := mat.NewDense(len(xs), nFeatures, nil)
	for i, x := range xs {
		for k := 0; k < nFeatures; k++ {
			if k == j {
				lineX.Set(i, k, x)
			} else {
				lineX.Set(i, k, trainMeans[k])
			}
		}
	}

	scaled, err := result.Scaler.Transform(lineX)
	if err != nil {
		return nil, err
	}
	preds, err := result.Model.Predict(scaled)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: preds.At(i, 0)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.NRGBA{B: 255, A: 255}
	line.Width = vg.Points(2)
	return line, nil
}

// PlotPredictionSurface renders the model's predictions over a grid spanning
// the two features' observed ranges as a heat map, with the train and test
// points overlaid. Models with any other feature count are skipped with a
// warning; there is nothing useful to draw on a plane for them.
func PlotPredictionSurface(cfg config.Config, split *dataset.SplitResult, result *pipeline.EvaluationResult, path string) (err error) {
	defer housefitErrors.Recover(&err, "visualization.PlotPredictionSurface")

	startTime := time.Now()
	logger := log.GetLoggerWithName("visualization")
	features := result.Formula.Features
	if len(features) != 2 {
		logger.Warn("Prediction surface needs exactly two features, skipping chart",
			log.FeaturesKey, len(features),
			log.PathKey, path,
		)
		return nil
	}

	grid, err := predictionSurface(cfg, split, result)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Predicted %s over %s and %s",
		titleCase(result.Formula.Target), titleCase(features[0]), titleCase(features[1]))
	p.X.Label.Text = titleCase(features[0])
	p.Y.Label.Text = titleCase(features[1])

	p.Add(plotter.NewHeatMap(grid, palette.Heat(12, 255)))

	train, err := columnPairScatter(split.XTrain, trainColor(cfg.ScatterAlpha))
	if err != nil {
		return err
	}
	p.Add(train)
	p.Legend.Add("Training data", train)

	test, err := columnPairScatter(split.XTest, testColor(cfg.ScatterAlpha))
	if err != nil {
		return err
	}
	p.Add(test)
	p.Legend.Add("Test data", test)

	width := vg.Length(cfg.FigWidthInches) * vg.Inch
	height := vg.Length(cfg.FigHeightInches) * vg.Inch
	if err := p.Save(width, height, path); err != nil {
		return housefitErrors.Wrapf(err, "housefit: cannot write chart %s", path)
	}

	logger.Info("Prediction surface chart saved",
		log.PathKey, path,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)
	return nil
}

// predictionGrid is a prediction lattice over two feature ranges, laid out
// row-major for plotter.GridXYZ.
type predictionGrid struct {
	xs, ys []float64
	zs     []float64
}

func (g *predictionGrid) Dims() (c, r int) { return len(g.xs), len(g.ys) }
func (g *predictionGrid) X(c int) float64  { return g.xs[c] }
func (g *predictionGrid) Y(r int) float64  { return g.ys[r] }
func (g *predictionGrid) Z(c, r int) float64 {
	return g.zs[r*len(g.xs)+c]
}

// predictionSurface predicts every point of a MeshGridSize x MeshGridSize
// lattice spanning the observed ranges of the two features.
func predictionSurface(cfg config.Config, split *dataset.SplitResult, result *pipeline.EvaluationResult) (*predictionGrid, error) {
	n := cfg.MeshGridSize
	if n < 2 {
		n = 2
	}

	xlo, xhi := columnRange(split, 0)
	ylo, yhi := columnRange(split, 1)
	xs := make([]float64, n)
	ys := make([]float64, n)
	floats.Span(xs, xlo, xhi)
	floats.Span(ys, ylo, yhi)

	pts := mat.NewDense(n*n, 2, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			i := r*n + c
			pts.Set(i, 0, xs[c])
			pts.Set(i, 1, ys[r])
		}
	}

	scaled, err := result.Scaler.Transform(pts)
	if err != nil {
		return nil, err
	}
	preds, err := result.Model.Predict(scaled)
	if err != nil {
		return nil, err
	}

	zs := make([]float64, n*n)
	for i := range zs {
		zs[i] = preds.At(i, 0)
	}
	return &predictionGrid{xs: xs, ys: ys, zs: zs}, nil
}

// columnScatter plots one feature column against the target values.
func columnScatter(X *mat.Dense, y *mat.VecDense, j int, c color.Color) (*plotter.Scatter, error) {
	r, _ := X.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i] = plotter.XY{X: X.At(i, j), Y: y.AtVec(i)}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	return s, nil
}

// columnPairScatter plots the first feature column against the second.
func columnPairScatter(X *mat.Dense, c color.Color) (*plotter.Scatter, error) {
	r, _ := X.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i] = plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	return s, nil
}

// columnMeans computes the per-column mean of a matrix.
func columnMeans(X *mat.Dense) []float64 {
	r, c := X.Dims()
	means := make([]float64, c)
	buf := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(buf, j, X)
		means[j] = stat.Mean(buf, nil)
	}
	return means
}

// columnRange finds the min and max of one feature column across both
// partitions, so lines and grids span everything the charts show.
func columnRange(split *dataset.SplitResult, j int) (lo, hi float64) {
	r, _ := split.XTrain.Dims()
	buf := make([]float64, r)
	mat.Col(buf, j, split.XTrain)
	lo, hi = floats.Min(buf), floats.Max(buf)

	if rTest, _ := split.XTest.Dims(); rTest > 0 {
		buf = make([]float64, rTest)
		mat.Col(buf, j, split.XTest)
		if v := floats.Min(buf); v < lo {
			lo = v
		}
		if v := floats.Max(buf); v > hi {
			hi = v
		}
	}
	return lo, hi
}

func trainColor(alpha float64) color.Color {
	return color.NRGBA{R: 255, A: alphaByte(alpha)}
}

func testColor(alpha float64) color.Color {
	return color.NRGBA{G: 160, A: alphaByte(alpha)}
}

func alphaByte(alpha float64) uint8 {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return uint8(math.Round(alpha * 255))
}

// titleCase turns a snake_case column name into a chart label, so
// "square_footage" reads as "Square Footage".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
