package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/quotation-service/internal/model"
)

const maxSheetName = 31

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the summary sections to a first sheet and the attachment
// list to a second one.
func (g *Generator) Generate(summary model.Summary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	used := map[string]struct{}{}
	summarySheet := buildSheetName(summary.Title, "Summary", used)
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, summary); err != nil {
		return nil, err
	}

	filesSheet := buildSheetName(summary.FilesTitle, "Documents", used)
	if _, err := file.NewSheet(filesSheet); err != nil {
		return nil, err
	}
	if err := g.writeFiles(file, filesSheet, summary); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, summary model.Summary) error {
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	var setErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && setErr == nil {
			setErr = err
		}
	}

	set("A1", summary.Title)
	_ = file.SetCellStyle(sheet, "A1", "A1", bold)

	row := 3
	for _, section := range summary.Sections {
		cell := fmt.Sprintf("A%d", row)
		set(cell, section.Title)
		_ = file.SetCellStyle(sheet, cell, cell, bold)
		row++
		for _, r := range section.Rows {
			set(fmt.Sprintf("A%d", row), r.Label)
			set(fmt.Sprintf("B%d", row), r.Value)
			row++
		}
		row++
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 60)
	return setErr
}

func (g *Generator) writeFiles(file *excelize.File, sheet string, summary model.Summary) error {
	var setErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && setErr == nil {
			setErr = err
		}
	}

	if len(summary.Files) == 0 {
		set("A1", summary.NoFiles)
		return setErr
	}

	for i, header := range summary.FileColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	for i, f := range summary.Files {
		row := i + 2
		set(fmt.Sprintf("A%d", row), f.Name)
		set(fmt.Sprintf("B%d", row), f.Type)
		set(fmt.Sprintf("C%d", row), f.SizeText)
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "C", 14)
	return setErr
}

func buildSheetName(title, fallback string, used map[string]struct{}) string {
	base := sanitizeSheetName(title)
	if base == "" {
		base = fallback
	}
	base = truncate(base, maxSheetName)

	candidate := base
	for counter := 2; ; counter++ {
		if _, exists := used[candidate]; !exists {
			used[candidate] = struct{}{}
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(strings.TrimSpace(value))
	return strings.Trim(value, "' ")
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
