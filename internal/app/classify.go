package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/relabs-tech/motion_beacon/internal/classify"
	"github.com/relabs-tech/motion_beacon/internal/config"
	"github.com/relabs-tech/motion_beacon/internal/sample"
)

// RunClassify reads recorded samples from a CSV file and prints a
// rest/motion label for each window. The CSV layout is
// Timestamp,X,Y,Z with a header row, the same layout the console tool
// produces when redirected to a file.
func RunClassify(path string) error {
	cfg := config.Get()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	samples, err := readSampleCSV(f)
	if err != nil {
		return fmt.Errorf("classify: %s: %w", path, err)
	}
	log.Printf("classify: loaded %d samples from %s", len(samples), path)

	windows := classify.Windows(samples, cfg.ClassifyWindowSize)
	if len(windows) == 0 {
		return fmt.Errorf("classify: need at least %d samples, got %d", cfg.ClassifyWindowSize, len(samples))
	}

	counts := map[classify.Label]int{}
	for i, w := range windows {
		feats := classify.Extract(w)
		label := classify.Classify(w)
		counts[label]++
		fmt.Printf("window %3d  mean=%8.1f  var=%10.1f  %s\n", i, feats.MeanMagnitude, feats.Variance, label)
	}

	fmt.Printf("\n%d windows: %d rest, %d motion\n", len(windows), counts[classify.LabelRest], counts[classify.LabelMotion])
	return nil
}

func readSampleCSV(r io.Reader) ([]sample.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4

	var samples []sample.Sample
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// Skip the header row.
		if row == 0 && rec[1] == "X" {
			continue
		}

		var axes [3]int16
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(rec[i+1], 10, 16)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row+1, rec[i+1], err)
			}
			axes[i] = int16(v)
		}
		samples = append(samples, sample.Sample{X: axes[0], Y: axes[1], Z: axes[2]})
	}
	return samples, nil
}
