package scrape

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jobsift/jobsift/internal/entities"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LoadRows reads a scraper output file into rows the ingest pipeline accepts.
func LoadRows(path string) ([]entities.ScrapedRow, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open scraped rows file")
	}
	defer file.Close()

	return ParseRows(file)
}

// ParseRows decodes scraper CSV output. The first record is a header; columns
// may appear in any order and unknown columns are ignored. Any cell may be
// empty, which reads as null.
func ParseRows(r io.Reader) ([]entities.ScrapedRow, error) {

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["job_url"]; !ok {
		return nil, errors.New("scraped rows file has no job_url column")
	}

	var rows []entities.ScrapedRow
	for line := 2; ; line++ {

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("skipping malformed csv record at line %v: %v", line, err)
			continue
		}

		cells := rowCells{record: record, columns: columns}
		rows = append(rows, entities.ScrapedRow{
			JobURL:                deref(cells.str("job_url")),
			JobURLDirect:          cells.str("job_url_direct"),
			Title:                 deref(cells.str("title")),
			Company:               cells.str("company"),
			CompanyURL:            cells.str("company_url"),
			Location:              cells.str("location"),
			Description:           cells.str("description"),
			JobType:               cells.str("job_type"),
			MinAmount:             cells.float("min_amount"),
			MaxAmount:             cells.float("max_amount"),
			Currency:              cells.str("currency"),
			Interval:              cells.str("interval"),
			IsRemote:              cells.boolean("is_remote"),
			DatePosted:            cells.date("date_posted"),
			ListingType:           cells.str("listing_type"),
			JobLevel:              cells.str("job_level"),
			JobFunction:           cells.str("job_function"),
			CompanyIndustry:       cells.str("company_industry"),
			CompanyHeadquarters:   cells.str("company_headquarters"),
			CompanyEmployeesCount: cells.str("company_employees_count"),
			ApplicantsCount:       cells.integer("applicants_count"),
			Emails:                cells.str("emails"),
		})
	}

	return rows, nil
}

type rowCells struct {
	record  []string
	columns map[string]int
}

func (c rowCells) str(column string) *string {
	index, ok := c.columns[column]
	if !ok || index >= len(c.record) {
		return nil
	}
	value := strings.TrimSpace(c.record[index])
	// pandas-style exports spell nulls several ways
	switch strings.ToLower(value) {
	case "", "none", "nan", "null":
		return nil
	}
	return &value
}

func (c rowCells) float(column string) *float64 {
	raw := c.str(column)
	if raw == nil {
		return nil
	}
	value, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func (c rowCells) integer(column string) *int {
	raw := c.str(column)
	if raw == nil {
		return nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		// scrapers sometimes emit counts as floats ("25.0")
		parsed, floatErr := strconv.ParseFloat(*raw, 64)
		if floatErr != nil {
			return nil
		}
		value = int(parsed)
	}
	return &value
}

func (c rowCells) boolean(column string) *bool {
	raw := c.str(column)
	if raw == nil {
		return nil
	}
	value, err := strconv.ParseBool(strings.ToLower(*raw))
	if err != nil {
		return nil
	}
	return &value
}

func (c rowCells) date(column string) *time.Time {
	raw := c.str(column)
	if raw == nil {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if value, err := time.Parse(layout, *raw); err == nil {
			return &value
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
