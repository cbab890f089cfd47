package dbcli

import (
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/spf13/cobra"

	"treedb/database"
)

var (
	benchCount int
	benchOrder int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Insert generated records and report operation timings",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := database.NewDatabase("")
		defer db.Close()
		coll, err := db.CreateCollection("bench", benchOrder)
		if err != nil {
			return fmt.Errorf("failed to create collection: %v", err)
		}

		keys := make([]string, benchCount)
		values := make([]string, benchCount)
		for i := range keys {
			keys[i] = fmt.Sprintf("%s_%d", faker.Word(), i)
			values[i] = faker.Sentence()
		}

		start := time.Now()
		for i := range keys {
			coll.Set(keys[i], values[i])
		}
		insertTook := time.Since(start)

		start = time.Now()
		misses := 0
		for i := range keys {
			if _, found := coll.Get(keys[i]); !found {
				misses++
			}
		}
		searchTook := time.Since(start)

		start = time.Now()
		scanned := len(coll.Scan("", "\xff"))
		scanTook := time.Since(start)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "inserted %d records in %v (avg %.2f µs)\n",
			benchCount, insertTook, avgMicros(insertTook, benchCount))
		fmt.Fprintf(out, "searched %d records in %v (avg %.2f µs, %d misses)\n",
			benchCount, searchTook, avgMicros(searchTook, benchCount), misses)
		fmt.Fprintf(out, "scanned %d records in %v\n", scanned, scanTook)
		s := coll.Stats()
		fmt.Fprintf(out, "index: order=%d keys=%d height=%d\n", s.Order, s.Keys, s.Height)
		return nil
	},
}

func avgMicros(d time.Duration, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(d.Microseconds()) / float64(n)
}

func init() {
	benchCmd.Flags().IntVar(&benchCount, "count", 10000, "number of records to insert")
	benchCmd.Flags().IntVar(&benchOrder, "order", 32, "branching factor of the index")
}
