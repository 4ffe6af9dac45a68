// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"fmt"
	"io"
	"math"
)

// suggestIterations picks an iteration count that would stretch the
// benchmark to roughly ten seconds, rounded to a quarter step of its power
// of ten so the suggestion reads like a number a human would type.
func suggestIterations(avgNanos uint64) uint64 {
	if avgNanos == 0 {
		avgNanos = 1
	}

	suggested := uint64(10_000_000_000) / avgNanos
	if suggested > 100 {
		precision := math.Pow(10, math.Round(math.Log10(float64(suggested))))
		suggested = uint64(math.Round(4*float64(suggested)/precision) / 4 * precision)
	}
	return suggested
}

// scaleNanos picks a display unit. Durations past 500 of a unit promote to
// the next one up.
func scaleNanos(ns uint64) (float64, string) {
	switch {
	case ns > 500_000_000:
		return float64(ns) / 1e9, "s"
	case ns > 500_000:
		return float64(ns) / 1e6, "ms"
	case ns > 500:
		return float64(ns) / 1e3, "us"
	default:
		return float64(ns), "ns"
	}
}

// ReportTimings prints the wall-clock summary for a finished run, and for
// multi-iteration runs the per-iteration average. Runs under a second get
// nudged toward a longer benchmark with a concrete flag value.
func ReportTimings(w io.Writer, res Result) {
	ns := uint64(res.Elapsed.Nanoseconds())

	scaled, unit := scaleNanos(ns)
	fmt.Fprintf(w, "Execution finished in %.4f%s.\n", scaled, unit)

	if res.Iterations <= 1 {
		return
	}

	avg := ns / res.Iterations
	avgScaled, avgUnit := scaleNanos(avg)
	fmt.Fprintf(w, "Benchmark average over %d iterations: %.2f%s\n\n",
		res.Iterations, avgScaled, avgUnit)

	if ns < 1_000_000_000 {
		fmt.Fprintf(w, "Warning: Low execution time might result in inaccurate benchmark results.\n")
		fmt.Fprintf(w, "Try increasing iteration count with --bench-iterations.\n")
		fmt.Fprintf(w, "Suggestion: --bench-iterations=%d\n", suggestIterations(avg))
	}
}
