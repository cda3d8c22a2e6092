package curves

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV emits one row per velocity: the grid value, then damping and
// frequency columns for every mode.
func (s *Set) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"velocity"}
	for _, c := range s.Curves {
		header = append(header,
			fmt.Sprintf("g_%d_%d", c.Mode.P, c.Mode.Q),
			fmt.Sprintf("f_%d_%d", c.Mode.P, c.Mode.Q),
		)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, v := range s.Velocities {
		row := []string{strconv.FormatFloat(v, 'f', 6, 64)}
		for _, c := range s.Curves {
			row = append(row,
				strconv.FormatFloat(c.Damping[i], 'g', 9, 64),
				strconv.FormatFloat(c.FrequencyHz[i], 'f', 4, 64),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON emits the whole set as indented JSON.
func (s *Set) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
