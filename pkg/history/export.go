package history

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ExportJSON renders records as an indented JSON array.
func ExportJSON(records []*Record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// ExportCSV renders records as CSV with a fixed header. The per-category
// counts collapse into a single "category:count" column sorted by category.
func ExportCSV(records []*Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"ID",
		"Timestamp",
		"RequestID",
		"Device",
		"TaskHash",
		"QubitCount",
		"Valid",
		"Violations",
		"Counts",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Timestamp.Format(time.RFC3339),
			rec.RequestID,
			rec.Device,
			rec.TaskHash,
			strconv.Itoa(rec.QubitCount),
			strconv.FormatBool(rec.Valid),
			strconv.Itoa(rec.Violations),
			formatCounts(rec.Counts),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b bytes.Buffer
	for i, category := range categories {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s:%d", category, counts[category])
	}
	return b.String()
}
