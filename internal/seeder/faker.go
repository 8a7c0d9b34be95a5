package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/csvmigrate/internal/csvfile"
	"github.com/Rana718/csvmigrate/internal/database"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// DataGenerator produces plausible text values from column names. All values
// are strings so they flow through the same insert path as CSV data.
type DataGenerator struct {
	rand    *rand.Rand
	counter int
	now     time.Time
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now(),
	}
}

// GenerateForColumn returns a value for colName, or nil for columns that
// reference other tables since there is no way to know valid keys.
func (g *DataGenerator) GenerateForColumn(colName string) *string {
	colLower := strings.ToLower(colName)

	var v string
	switch {
	case colLower == "uuid" || strings.HasSuffix(colLower, "_uuid") || strings.HasSuffix(colLower, "guid"):
		v = g.generateUUID()
	case strings.HasSuffix(colLower, "_id"):
		return nil
	case strings.Contains(colLower, "email"):
		v = g.generateEmail()
	case strings.HasSuffix(colLower, "_at") || strings.Contains(colLower, "timestamp"):
		v = g.generateTimestamp()
	case strings.Contains(colLower, "date"):
		v = g.generateDate()
	case strings.HasPrefix(colLower, "is_") || strings.HasPrefix(colLower, "has_"):
		v = strconv.FormatBool(g.rand.Intn(2) == 1)
	case strings.Contains(colLower, "name") && !strings.Contains(colLower, "file") && !strings.Contains(colLower, "user"):
		v = g.generateName()
	case strings.Contains(colLower, "title"):
		v = g.generateTitle()
	case strings.Contains(colLower, "description") || strings.Contains(colLower, "content"):
		v = g.generateSentence()
	case strings.Contains(colLower, "url") || strings.Contains(colLower, "link"):
		v = g.generateURL()
	case strings.Contains(colLower, "phone"):
		v = g.generatePhone()
	case strings.Contains(colLower, "address"):
		v = g.generateAddress()
	case strings.Contains(colLower, "price") || strings.Contains(colLower, "amount"):
		v = strconv.FormatFloat(float64(g.rand.Intn(1000000))/100, 'f', 2, 64)
	case strings.Contains(colLower, "count") || strings.Contains(colLower, "quantity"):
		v = strconv.Itoa(g.rand.Intn(1000))
	default:
		v = g.generateWord()
	}
	return &v
}

// Records builds count rows for columns. Columns named id are left out so
// the database assigns them.
func (g *DataGenerator) Records(columns []string, count int) []types.Record {
	var cols []string
	for _, c := range columns {
		if strings.EqualFold(c, "id") {
			continue
		}
		cols = append(cols, c)
	}

	records := make([]types.Record, 0, count)
	for i := 0; i < count; i++ {
		values := make([]*string, len(cols))
		for j, c := range cols {
			values[j] = g.GenerateForColumn(c)
		}
		records = append(records, types.Record{Columns: cols, Values: values})
	}
	return records
}

// SyntheticFake returns a fake-data hook that generates count rows shaped
// like the table's real CSV header. Without a real file there is nothing to
// model the rows on and the hook does nothing.
func SyntheticFake(opts Options, count int, seed int64) ManualImportFunc {
	return func(ctx context.Context, sink database.TableSink, table string) error {
		if count <= 0 {
			return nil
		}

		r := New(opts, Hooks{})
		header, err := csvfile.ReadHeader(r.Path(table, types.Real), r.opts.CSV)
		if err != nil {
			if errors.Is(err, csvfile.ErrFileNotFound) {
				color.Yellow("  ⚠️  No real CSV for %s to model fake rows on", table)
				return nil
			}
			return err
		}
		if len(header) == 0 {
			return nil
		}

		records := NewDataGenerator(seed).Records(header, count)
		if len(records) == 0 || len(records[0].Columns) == 0 {
			return nil
		}
		if err := sink.InsertBatch(ctx, table, records); err != nil {
			return fmt.Errorf("failed to insert generated rows: %w", err)
		}
		color.Green("  ✅ %d generated fake rows inserted into %s", len(records), table)
		return nil
	}
}

func (g *DataGenerator) generateName() string {
	firstNames := []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	return firstNames[g.rand.Intn(len(firstNames))] + " " + lastNames[g.rand.Intn(len(lastNames))]
}

func (g *DataGenerator) generateEmail() string {
	g.counter++
	domains := []string{"example.com", "test.com", "demo.com", "mail.com"}
	return fmt.Sprintf("user%d_%d@%s", g.counter, g.rand.Intn(100000), domains[g.rand.Intn(len(domains))])
}

func (g *DataGenerator) generateTitle() string {
	titles := []string{
		"Getting Started with Go",
		"Understanding Databases",
		"Introduction to APIs",
		"Cloud Computing Basics",
		"Data Structures and Algorithms",
	}
	return titles[g.rand.Intn(len(titles))]
}

func (g *DataGenerator) generateSentence() string {
	sentences := []string{
		"This is a sample text generated for testing purposes.",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"The quick brown fox jumps over the lazy dog.",
	}
	return sentences[g.rand.Intn(len(sentences))]
}

func (g *DataGenerator) generateWord() string {
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}
	return words[g.rand.Intn(len(words))]
}

func (g *DataGenerator) generateURL() string {
	return fmt.Sprintf("https://example.com/page/%d", g.rand.Intn(1000))
}

func (g *DataGenerator) generatePhone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.rand.Intn(1000), g.rand.Intn(1000), g.rand.Intn(10000))
}

func (g *DataGenerator) generateAddress() string {
	return fmt.Sprintf("%d Main Street, City, State %05d", g.rand.Intn(9999)+1, g.rand.Intn(100000))
}

func (g *DataGenerator) generateTimestamp() string {
	return g.now.AddDate(0, 0, -g.rand.Intn(365)).UTC().Format("2006-01-02 15:04:05")
}

func (g *DataGenerator) generateDate() string {
	return g.now.AddDate(0, 0, -g.rand.Intn(365)).Format("2006-01-02")
}

func (g *DataGenerator) generateUUID() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
