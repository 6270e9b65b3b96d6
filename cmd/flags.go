package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/book"
	"github.com/s0up4200/calameo/calameo"
)

// listFlags are the range and sort flags of single-page listings
type listFlags struct {
	order string
	way   string
	start int
	step  int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.order, "order", "", "sort criterion (e.g. Name, Creation)")
	cmd.Flags().StringVar(&f.way, "way", "", "sort direction (UP|DOWN)")
	cmd.Flags().IntVar(&f.start, "start", 0, "index of the first item")
	cmd.Flags().IntVar(&f.step, "step", calameo.MaxPageSize, "number of items to return")
}

func (f *listFlags) options() (calameo.ListOptions, error) {
	if f.way != "" && f.way != "UP" && f.way != "DOWN" {
		return calameo.ListOptions{}, fmt.Errorf("invalid --way %q (must be UP or DOWN)", f.way)
	}
	if f.step < 1 || f.step > calameo.MaxPageSize {
		return calameo.ListOptions{}, fmt.Errorf("--step must be between 1 and %d", calameo.MaxPageSize)
	}
	return calameo.ListOptions{Order: f.order, Way: f.way, Start: f.start, Step: f.step}, nil
}

// parseSetFlags turns repeated key=value flags into request fields. Keys
// that name a vocabulary field are checked against it.
func parseSetFlags(pairs []string) (calameo.Fields, error) {
	vocabularies := make(map[string]book.Vocabulary)
	for _, v := range book.Vocabularies() {
		vocabularies[v.Field] = v
	}

	fields := make(calameo.Fields, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (expected key=value)", pair)
		}
		if v, known := vocabularies[key]; known {
			if err := v.Validate(value); err != nil {
				return nil, err
			}
		}
		fields[key] = value
	}
	return fields, nil
}

func parseSubscriptionID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subscription ID %q", s)
	}
	return id, nil
}
