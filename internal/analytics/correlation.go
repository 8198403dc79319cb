package analytics

import "math"

// Returns converts a close series into day-over-day simple returns.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// Pearson computes the correlation coefficient over the overlapping prefix of
// the two series. Degenerate input (no overlap, zero variance) yields 0.
func Pearson(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}

	var sumA, sumB float64
	for i := 0; i < n; i++ {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}

	r := cov / math.Sqrt(varA*varB)
	// Clamp floating drift.
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}

// CorrelationMatrix pairs the ticker list actually used with a square matrix,
// since tickers without history are dropped and the dimension shrinks.
type CorrelationMatrix struct {
	Tickers []string    `json:"tickers"`
	Matrix  [][]float64 `json:"matrix"`
}

// Correlation builds the pairwise Pearson matrix over return series. Order
// lists the candidate tickers; those missing from series are skipped. The
// diagonal is exactly 1.
func Correlation(order []string, series map[string][]float64) CorrelationMatrix {
	tickers := make([]string, 0, len(order))
	for _, t := range order {
		if len(series[t]) > 0 {
			tickers = append(tickers, t)
		}
	}

	matrix := make([][]float64, len(tickers))
	for i := range tickers {
		matrix[i] = make([]float64, len(tickers))
		matrix[i][i] = 1
	}
	for i := 0; i < len(tickers); i++ {
		for j := i + 1; j < len(tickers); j++ {
			r := Pearson(series[tickers[i]], series[tickers[j]])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return CorrelationMatrix{Tickers: tickers, Matrix: matrix}
}
