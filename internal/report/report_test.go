package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/t4p/competition-toolkit/pkg/compliance"
	"github.com/t4p/competition-toolkit/pkg/dominance"
	"github.com/t4p/competition-toolkit/pkg/hhi"
	"github.com/t4p/competition-toolkit/pkg/merger"
)

var testTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func sampleHHIDocument(t *testing.T) Document {
	t.Helper()
	shares := hhi.MarketShareSet{
		{Name: "Firm A", Share: 40},
		{Name: "Firm B", Share: 30},
		{Name: "Firm C", Share: 20},
		{Name: "Firm D", Share: 10},
	}
	return HHIDocument(hhi.BuildReport(shares, hhi.Interpret(hhi.Calculate(shares)), testTime))
}

func TestHHIDocumentSections(t *testing.T) {
	doc := sampleHHIDocument(t)

	if doc.Title != "HHI Calculation Report" {
		t.Errorf("title = %q", doc.Title)
	}
	headings := make([]string, len(doc.Sections))
	for i, section := range doc.Sections {
		headings[i] = section.Heading
	}
	expected := []string{"Summary", "Market Shares", "Calculation Method", "Interpretation"}
	if len(headings) != len(expected) {
		t.Fatalf("got sections %v, expected %v", headings, expected)
	}
	for i := range expected {
		if headings[i] != expected[i] {
			t.Errorf("section %d = %q, expected %q", i, headings[i], expected[i])
		}
	}

	table := doc.Sections[1].Table
	if table == nil {
		t.Fatal("market shares section has no table")
	}
	if len(table.Rows) != 4 {
		t.Errorf("share table has %d rows, expected 4", len(table.Rows))
	}
	if table.Rows[0][0] != "Firm A" {
		t.Errorf("first firm = %q, input order not preserved", table.Rows[0][0])
	}
}

func TestMergerDocument(t *testing.T) {
	assessment, err := merger.Assess(
		[]merger.Party{{Name: "Acquirer", Turnover: 600_000_000, Currency: "TRY"}},
		[]merger.Party{{Name: "Target Co", Turnover: 80_000_000, Currency: "TRY"}},
		merger.DefaultThresholds(),
		func(amount float64, from, to string) (float64, error) { return amount, nil },
		testTime,
	)
	if err != nil {
		t.Fatalf("Assess() error: %v", err)
	}

	doc := MergerDocument(assessment)
	if doc.Sections[0].KeyValues[0].Value != assessment.Verdict() {
		t.Errorf("verdict key-value = %q, expected %q", doc.Sections[0].KeyValues[0].Value, assessment.Verdict())
	}
	if got := len(doc.Sections[1].Table.Rows); got != 2 {
		t.Errorf("party table has %d rows, expected 2", got)
	}
	// Table amounts are exact with grouping, not abbreviated.
	if got := doc.Sections[1].Table.Rows[0][2]; got != "₺600,000,000.00" {
		t.Errorf("original amount cell = %q, expected exact formatting", got)
	}
}

func TestComplianceDocument(t *testing.T) {
	answers := make(map[string]compliance.Answer, len(compliance.Questions))
	for _, q := range compliance.Questions {
		answers[q.ID] = compliance.AnswerNo
	}
	result, err := compliance.Score(answers, testTime)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	doc := ComplianceDocument(result)
	if len(doc.Sections) != 3 {
		t.Fatalf("got %d sections, expected 3", len(doc.Sections))
	}
	if len(doc.Sections[2].List) != len(result.Recommendations) {
		t.Errorf("recommendations list has %d items, expected %d",
			len(doc.Sections[2].List), len(result.Recommendations))
	}
}

func TestDominanceDocument(t *testing.T) {
	result, err := dominance.Assess(dominance.Inputs{MarketShare: 55, EntryBarriers: dominance.BarrierHigh}, testTime)
	if err != nil {
		t.Fatalf("Assess() error: %v", err)
	}

	doc := DominanceDocument(result)
	if got := len(doc.Sections[1].Table.Rows); got != len(result.Factors) {
		t.Errorf("factor table has %d rows, expected %d", got, len(result.Factors))
	}
}

func TestPDFRendering(t *testing.T) {
	doc := sampleHHIDocument(t)

	data, err := doc.PDF()
	if err != nil {
		t.Fatalf("PDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("PDF output missing %PDF- header")
	}
	if len(data) < 1000 {
		t.Errorf("PDF output suspiciously small: %d bytes", len(data))
	}
}

func TestCSVRendering(t *testing.T) {
	doc := sampleHHIDocument(t)

	data, err := doc.CSV()
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}

	if records[0][0] != doc.Title {
		t.Errorf("first record = %v, expected title row", records[0])
	}
	var foundHeader bool
	for _, record := range records {
		if len(record) == 4 && record[0] == "Firm" {
			foundHeader = true
		}
	}
	if !foundHeader {
		t.Error("CSV output missing the share table header row")
	}
}

func TestXLSXRendering(t *testing.T) {
	doc := sampleHHIDocument(t)

	data, err := doc.XLSX()
	if err != nil {
		t.Fatalf("XLSX() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("XLSX output does not open: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	title, err := f.GetCellValue(excelSheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	if title != doc.Title {
		t.Errorf("A1 = %q, expected %q", title, doc.Title)
	}

	rows, err := f.GetRows(excelSheet)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	var foundFirm bool
	for _, row := range rows {
		if len(row) > 0 && strings.HasPrefix(row[0], "Firm A") {
			foundFirm = true
		}
	}
	if !foundFirm {
		t.Error("workbook missing firm rows")
	}
}
