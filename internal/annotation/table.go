package annotation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TableExt is the extension of the tabular export.
const TableExt = ".csv"

// TableHeader is the header line of the tabular export.
const TableHeader = "X, Y, Horizon, Azimuth"

// TablePath returns the export path for imagePath.
func TablePath(imagePath string) string {
	return withExt(imagePath, TableExt)
}

// WriteTable writes one row per dot below TableHeader. Dots without angles
// leave the last two columns blank.
func WriteTable(w io.Writer, dots []Dot) error {
	if _, err := io.WriteString(w, TableHeader+"\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	for _, d := range dots {
		row := []string{strconv.Itoa(d.X), strconv.Itoa(d.Y), "", ""}
		if d.Angles != nil {
			row[2] = strconv.FormatFloat(d.Angles.Elevation, 'f', -1, 64)
			row[3] = strconv.FormatFloat(d.Angles.Bearing, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatTable returns the tabular export as a string.
func FormatTable(dots []Dot) (string, error) {
	var sb strings.Builder
	if err := WriteTable(&sb, dots); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ReadTable reads a tabular export back into dots. Column order is taken
// from the header so hand-edited files with reordered columns still load.
func ReadTable(r io.Reader) ([]Dot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	idx := map[string]int{}
	for i, h := range recs[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	ix, iy, ih, ia := col("x"), col("y"), col("horizon"), col("azimuth")
	if ix < 0 || iy < 0 {
		return nil, fmt.Errorf("%w: table header lacks X/Y columns", ErrCorrupt)
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var dots []Dot
	for n, row := range recs[1:] {
		x, errX := strconv.Atoi(field(row, ix))
		y, errY := strconv.Atoi(field(row, iy))
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: row %d has invalid coordinates", ErrCorrupt, n+1)
		}
		d := Dot{X: x, Y: y}
		hs, as := field(row, ih), field(row, ia)
		if hs != "" || as != "" {
			h, errH := strconv.ParseFloat(hs, 64)
			a, errA := strconv.ParseFloat(as, 64)
			if errH != nil || errA != nil {
				return nil, fmt.Errorf("%w: row %d has invalid angles", ErrCorrupt, n+1)
			}
			d.Angles = &Angles{Elevation: h, Bearing: a}
		}
		dots = append(dots, d)
	}
	return dots, nil
}
