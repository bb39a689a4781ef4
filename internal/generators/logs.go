package generators

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"github.com/mmrzaf/synthgen/internal/table"
	"github.com/mmrzaf/synthgen/internal/timeutil"
)

// Logs generates job/batch log records: evenly spaced timestamps over a
// window, category-scoped job names and status-conditioned derived
// fields.
type Logs struct {
	src *randutil.Source
}

func NewLogs(src *randutil.Source) *Logs {
	return &Logs{src: src}
}

// jobCategoryNames keeps the taxonomy iteration order fixed.
var jobCategoryNames = []string{"ETL", "Data Processing", "Sync", "Export", "Finance", "Maintenance"}

var jobTaxonomy = map[string][]string{
	"ETL": {
		"customer_etl", "sales_etl", "product_etl", "inventory_etl",
		"user_data_etl", "order_etl", "analytics_etl", "report_etl",
	},
	"Data Processing": {
		"sales_aggregation", "revenue_calculation", "data_validation",
		"data_cleaning", "data_transformation", "data_enrichment",
	},
	"Sync": {
		"inventory_sync", "customer_sync", "product_sync", "order_sync",
		"warehouse_sync", "crm_sync", "erp_sync",
	},
	"Export": {
		"user_export", "sales_export", "report_export", "analytics_export",
		"audit_export", "backup_export", "data_export",
	},
	"Finance": {
		"payment_reconciliation", "invoice_generation", "payroll_processing",
		"tax_calculation", "billing_sync", "financial_reporting",
	},
	"Maintenance": {
		"database_backup", "log_rotation", "cache_cleanup", "index_rebuild",
		"system_health_check", "security_scan", "performance_monitoring",
	},
}

func allJobNames() []string {
	var out []string
	for _, cat := range jobCategoryNames {
		out = append(out, jobTaxonomy[cat]...)
	}
	return out
}

// Categories lists the taxonomy's category names.
func Categories() []string {
	return append([]string(nil), jobCategoryNames...)
}

var defaultStatuses = []string{"SUCCESS", "FAILED", "WARNING", "TIMEOUT", "CANCELLED"}
var defaultStatusWeights = []float64{0.70, 0.15, 0.10, 0.03, 0.02}

var severityByStatus = map[string]string{
	"SUCCESS":   "INFO",
	"WARNING":   "WARNING",
	"FAILED":    "ERROR",
	"TIMEOUT":   "ERROR",
	"CANCELLED": "WARNING",
}

var failedStatuses = map[string]bool{
	"FAILED":    true,
	"TIMEOUT":   true,
	"CANCELLED": true,
}

var errorMessagePool = []string{
	"Connection timeout",
	"Database locked",
	"Out of memory",
	"Permission denied",
	"File not found",
	"Invalid data format",
	"Network error",
	"Disk full",
	"Authentication failed",
	"Resource unavailable",
	"Data validation failed",
	"Deadlock detected",
	"Query timeout",
	"Service unavailable",
	"Rate limit exceeded",
}

type LogParams struct {
	Rows      int
	StartDate time.Time // zero: 30 days before EndDate
	EndDate   time.Time // zero: now
	JobNames  []string  // empty: the full taxonomy
	// StatusWeights replaces (not merges with) the default status set;
	// its keys become the full status vocabulary.
	StatusWeights       map[string]float64
	DurationMin         int // zero pair: 10..300 seconds
	DurationMax         int
	IncludeErrorMessage bool
	IncludeSeverity     bool
}

func (p *LogParams) withDefaults(now time.Time) {
	if p.EndDate.IsZero() {
		p.EndDate = now
	}
	if p.StartDate.IsZero() {
		p.StartDate = p.EndDate.AddDate(0, 0, -30)
	}
	if p.DurationMin == 0 && p.DurationMax == 0 {
		p.DurationMin, p.DurationMax = 10, 300
	}
}

// Generate produces job log rows. Timestamps are always evenly spaced
// over [StartDate, EndDate] inclusive.
func (g *Logs) Generate(p LogParams) (*domain.Table, error) {
	p.withDefaults(time.Now())
	if err := checkRows(p.Rows); err != nil {
		return nil, err
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, fmt.Errorf("%w: date window [%s, %s]", domain.ErrInvalidParameter,
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}
	if p.DurationMax < p.DurationMin {
		return nil, fmt.Errorf("%w: duration range [%d, %d]", domain.ErrInvalidParameter, p.DurationMin, p.DurationMax)
	}
	n := p.Rows

	jobs := p.JobNames
	if len(jobs) == 0 {
		jobs = allJobNames()
	}
	jobNames, err := g.src.Categorical(n, jobs, nil)
	if err != nil {
		return nil, err
	}

	statuses := defaultStatuses
	weights := defaultStatusWeights
	if p.StatusWeights != nil {
		// sort the override keys so draws stay deterministic per seed
		statuses = make([]string, 0, len(p.StatusWeights))
		for s := range p.StatusWeights {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses)
		weights = make([]float64, len(statuses))
		for i, s := range statuses {
			weights[i] = p.StatusWeights[s]
		}
	}
	statusCol, err := g.src.Categorical(n, statuses, weights)
	if err != nil {
		return nil, err
	}

	durations := make([]int, n)
	for i := range durations {
		durations[i] = g.src.IntBetween(p.DurationMin, p.DurationMax+1)
	}

	b := table.NewBuilder(n).
		Add("timestamp", boxTimes(timeutil.Spaced(p.StartDate, p.EndDate, n))).
		AddStrings("job_name", jobNames).
		AddStrings("status", statusCol).
		Add("duration_seconds", boxInts(durations))

	if p.IncludeSeverity {
		severities := make([]interface{}, n)
		for i, s := range statusCol {
			if sev, ok := severityByStatus[s]; ok {
				severities[i] = sev
			}
		}
		b.Add("severity", severities)
	}

	if p.IncludeErrorMessage {
		messages := make([]interface{}, n)
		for i, s := range statusCol {
			if failedStatuses[s] {
				messages[i] = g.src.Pick(errorMessagePool)
			}
		}
		b.Add("error_message", messages)
	}

	return b.Build()
}

func categoryJobs(category string) ([]string, error) {
	jobs, ok := jobTaxonomy[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			domain.ErrUnknownCategory, category, strings.Join(jobCategoryNames, ", "))
	}
	return jobs, nil
}

// GenerateByCategory restricts the job-name pool to one taxonomy
// category.
func (g *Logs) GenerateByCategory(category string, p LogParams) (*domain.Table, error) {
	jobs, err := categoryJobs(category)
	if err != nil {
		return nil, err
	}
	p.JobNames = jobs
	return g.Generate(p)
}

// GenerateStringsByCategory restricts the job-name pool of the log-line
// rendering to one taxonomy category.
func (g *Logs) GenerateStringsByCategory(category string, p LogStringParams) ([]string, error) {
	jobs, err := categoryJobs(category)
	if err != nil {
		return nil, err
	}
	p.JobNames = jobs
	return g.GenerateStrings(p)
}

type LogStringParams struct {
	LogParams
	Separator       string // zero: "|"
	TimestampLayout string // zero: "2006-01-02 15:04:05"
}

// GenerateStrings renders the same generation as log lines of the form
// timestamp|job_name|status|duration.
func (g *Logs) GenerateStrings(p LogStringParams) ([]string, error) {
	if p.Separator == "" {
		p.Separator = "|"
	}
	if p.TimestampLayout == "" {
		p.TimestampLayout = "2006-01-02 15:04:05"
	}
	p.IncludeErrorMessage = false
	p.IncludeSeverity = false

	t, err := g.Generate(p.LogParams)
	if err != nil {
		return nil, err
	}

	lines := make([]string, t.Len())
	for i, row := range t.Rows {
		ts := row[0].(time.Time)
		lines[i] = ts.Format(p.TimestampLayout) + p.Separator +
			row[1].(string) + p.Separator +
			row[2].(string) + p.Separator +
			strconv.Itoa(row[3].(int))
	}
	return lines, nil
}
