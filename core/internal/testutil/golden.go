// Package testutil carries small helpers shared by core/*'s test suites
// that don't belong in any one package, adapted from the teacher's
// sim/internal/testutil/golden.go comparison helper.
package testutil

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// CompareGoldenCSV compares a freshly generated CSV file against a
// checked-in golden file, column by column, within tolerance. Both files
// must share the same header row. Returns a nil error when every numeric
// cell is within tolerance and every non-numeric cell matches exactly.
func CompareGoldenCSV(gotPath, goldenPath string, tolerance float64) error {
	got, err := readCSVRows(gotPath)
	if err != nil {
		return fmt.Errorf("reading generated file: %w", err)
	}
	golden, err := readCSVRows(goldenPath)
	if err != nil {
		return fmt.Errorf("reading golden file: %w", err)
	}
	if len(got) != len(golden) {
		return fmt.Errorf("row count mismatch: got %d rows, golden has %d", len(got), len(golden))
	}

	for r := range got {
		if len(got[r]) != len(golden[r]) {
			return fmt.Errorf("row %d: column count mismatch (%d vs %d)", r, len(got[r]), len(golden[r]))
		}
		for c := range got[r] {
			gotVal, gotErr := strconv.ParseFloat(got[r][c], 64)
			goldenVal, goldenErr := strconv.ParseFloat(golden[r][c], 64)
			if gotErr != nil || goldenErr != nil {
				if got[r][c] != golden[r][c] {
					return fmt.Errorf("row %d col %d: %q != %q", r, c, got[r][c], golden[r][c])
				}
				continue
			}
			if math.Abs(gotVal-goldenVal) > tolerance {
				return fmt.Errorf("row %d col %d: %v differs from golden %v by more than %v", r, c, gotVal, goldenVal, tolerance)
			}
		}
	}
	return nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
