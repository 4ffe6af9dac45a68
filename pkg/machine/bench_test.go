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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScaleNanos(t *testing.T) {
	testCases := []struct {
		ns   uint64
		want float64
		unit string
	}{
		{0, 0, "ns"},
		{499, 499, "ns"},
		{500, 500, "ns"},
		{501, 0.501, "us"},
		{1234, 1.234, "us"},
		{500_000, 500, "us"},
		{2_000_000, 2, "ms"},
		{500_000_000, 500, "ms"},
		{600_000_000, 0.6, "s"},
		{2_500_000_000, 2.5, "s"},
	}

	for _, tc := range testCases {
		got, unit := scaleNanos(tc.ns)
		assert.Equal(t, tc.unit, unit, "%dns", tc.ns)
		assert.InDelta(t, tc.want, got, 1e-9, "%dns", tc.ns)
	}
}

func TestSuggestIterations(t *testing.T) {
	testCases := []struct {
		avg  uint64
		want uint64
	}{
		// 10s / 1us, already on a power of ten
		{1000, 10_000_000},
		// 10s / 3ns = 3.33e9, quarter-rounded against 1e10
		{3, 2_500_000_000},
		// small suggestions are left unrounded
		{200_000_000, 50},
		// zero average must not divide by zero
		{0, 10_000_000_000},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, suggestIterations(tc.avg), "avg %dns", tc.avg)
	}
}

func TestReportTimingsSingleRun(t *testing.T) {
	var buf bytes.Buffer
	ReportTimings(&buf, Result{
		Iterations: 1,
		Elapsed:    2 * time.Second,
	})

	assert.Equal(t, "Execution finished in 2.0000s.\n", buf.String())
}

func TestReportTimingsBenchmark(t *testing.T) {
	var buf bytes.Buffer
	ReportTimings(&buf, Result{
		Iterations: 1000,
		Elapsed:    500 * time.Millisecond,
	})

	want := strings.Join([]string{
		"Execution finished in 500.0000ms.",
		"Benchmark average over 1000 iterations: 500.00us",
		"",
		"Warning: Low execution time might result in inaccurate benchmark results.",
		"Try increasing iteration count with --bench-iterations.",
		"Suggestion: --bench-iterations=20000",
		"",
	}, "\n")

	assert.Equal(t, want, buf.String())
}

func TestReportTimingsLongBenchmarkSkipsSuggestion(t *testing.T) {
	var buf bytes.Buffer
	ReportTimings(&buf, Result{
		Iterations: 10,
		Elapsed:    12 * time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "Benchmark average over 10 iterations")
	assert.NotContains(t, out, "Suggestion")
}
