// Package export writes job batch and ATS results to Excel workbooks.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/cvgen/internal/types"
)

// Sheet names
const (
	SheetPostings  = "Postings"
	SheetKeyTerms  = "Key Terms"
	SheetATS       = "ATS Summary"
	SheetATSIssues = "ATS Issues"
)

// ATSReport pairs an analysis with the document it was run on
type ATSReport struct {
	Source   string
	Analysis *types.ATSAnalysis
}

// WithExtension appends .xlsx unless path already ends with it
func WithExtension(path string) string {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	return filepath.Clean(path)
}

// JobsToExcel writes job posting analyses to an .xlsx file and returns the
// path written
func JobsToExcel(results []*types.JobPostingAnalysis, outputPath string) (string, error) {
	f, err := JobsWorkbook(results)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return save(f, outputPath)
}

// ATSToExcel writes ATS reports to an .xlsx file and returns the path written
func ATSToExcel(reports []ATSReport, outputPath string) (string, error) {
	f, err := ATSWorkbook(reports)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return save(f, outputPath)
}

// WriteJobs streams the job workbook to w
func WriteJobs(w io.Writer, results []*types.JobPostingAnalysis) error {
	f, err := JobsWorkbook(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func save(f *excelize.File, outputPath string) (string, error) {
	path := WithExtension(outputPath)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

// JobsWorkbook builds a workbook with one row per posting and a sheet of
// key terms ranked by how many postings mention them
func JobsWorkbook(results []*types.JobPostingAnalysis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetPostings); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetKeyTerms); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	headers := []string{"URL", "Domain", "Site", "Title", "Company", "Location", "Job Type",
		"Experience", "Salary", "Posted", "Status", "Required Skills", "Desired Skills", "Key Terms"}
	widths := []float64{40, 20, 12, 30, 25, 20, 12, 12, 18, 14, 30, 40, 40, 50}
	if err := writeHeader(f, SheetPostings, headers, widths, st.header); err != nil {
		return nil, err
	}

	for i, r := range results {
		if r == nil {
			continue
		}
		status := "ok"
		if r.FetchError != nil {
			status = fmt.Sprintf("%s: %s", r.FetchError.Kind, r.FetchError.Message)
		}
		row := []any{
			r.Source.URL, r.Source.Domain, r.Source.Site, r.Title, r.Company, r.Location, r.JobType,
			r.ExperienceLevel, r.SalaryRange, r.PostedDate, status,
			strings.Join(r.RequiredSkills, ", "), strings.Join(r.DesiredSkills, ", "), strings.Join(r.KeyTerms, ", "),
		}
		if err := writeRow(f, SheetPostings, i+2, row); err != nil {
			return nil, err
		}
		if r.FetchError != nil {
			if err := styleRow(f, SheetPostings, i+2, len(headers), st.poor); err != nil {
				return nil, err
			}
		}
	}
	if err := finishTable(f, SheetPostings, len(headers), len(results)); err != nil {
		return nil, err
	}

	terms := rankTerms(results)
	if err := writeHeader(f, SheetKeyTerms, []string{"Term", "Postings", "Share"}, []float64{30, 12, 12}, st.header); err != nil {
		return nil, err
	}
	ok := 0
	for _, r := range results {
		if r != nil && r.FetchError == nil {
			ok++
		}
	}
	for i, tc := range terms {
		share := 0.0
		if ok > 0 {
			share = float64(tc.count) / float64(ok)
		}
		if err := writeRow(f, SheetKeyTerms, i+2, []any{tc.term, tc.count, share}); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(3, i+2)
		if err := f.SetCellStyle(SheetKeyTerms, cell, cell, st.percent); err != nil {
			return nil, fmt.Errorf("failed to style cell: %w", err)
		}
	}
	if err := finishTable(f, SheetKeyTerms, 3, len(terms)); err != nil {
		return nil, err
	}
	return f, nil
}

// ATSWorkbook builds a workbook with a summary row per report and one row
// per triggered issue
func ATSWorkbook(reports []ATSReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetATS); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetATSIssues); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	summary := []string{"Source", "Score", "Issues", "Keyword Match %", "Recommendation"}
	if err := writeHeader(f, SheetATS, summary, []float64{40, 10, 10, 16, 70}, st.header); err != nil {
		return nil, err
	}
	issues := []string{"Source", "Type", "Delta", "Message", "Fix", "Detected"}
	if err := writeHeader(f, SheetATSIssues, issues, []float64{40, 22, 8, 60, 60, 20}, st.header); err != nil {
		return nil, err
	}

	issueRow := 2
	for i, rep := range reports {
		a := rep.Analysis
		if a == nil {
			continue
		}
		var match any = ""
		if a.Keywords != nil {
			match = a.Keywords.MatchPercentage
		}
		if err := writeRow(f, SheetATS, i+2, []any{rep.Source, a.Score, len(a.Issues), match, a.Recommendation}); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellStyle(SheetATS, cell, cell, st.forScore(a.Score)); err != nil {
			return nil, fmt.Errorf("failed to style cell: %w", err)
		}

		for _, issue := range a.Issues {
			row := []any{rep.Source, string(issue.Type), issue.Score, issue.Message, issue.Fix, issue.Detected}
			if err := writeRow(f, SheetATSIssues, issueRow, row); err != nil {
				return nil, err
			}
			if err := styleRow(f, SheetATSIssues, issueRow, len(issues), st.wrap); err != nil {
				return nil, err
			}
			issueRow++
		}
	}
	if err := finishTable(f, SheetATS, len(summary), len(reports)); err != nil {
		return nil, err
	}
	if err := finishTable(f, SheetATSIssues, len(issues), issueRow-2); err != nil {
		return nil, err
	}
	return f, nil
}

type termCount struct {
	term  string
	count int
}

// rankTerms counts the postings each key term appears in, most common first
func rankTerms(results []*types.JobPostingAnalysis) []termCount {
	counts := map[string]int{}
	var order []string
	for _, r := range results {
		if r == nil || r.FetchError != nil {
			continue
		}
		for _, t := range r.KeyTerms {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	out := make([]termCount, 0, len(order))
	for _, t := range order {
		out = append(out, termCount{term: t, count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}
