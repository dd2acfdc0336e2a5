package export

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

const entriesSheet = "Entries"

var xlsxHeader = []string{"Date", "Kind", "Category", "Description", "Amount"}

// XLSX builds a workbook with one row per entry under a bold header row
func XLSX(entries []ledger.Entry) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "personal-finance-tracker",
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())

	_ = xlsx.SetColWidth(sheet, "A", "B", 12)
	_ = xlsx.SetColWidth(sheet, "C", "C", 20)
	_ = xlsx.SetColWidth(sheet, "D", "D", 40)
	_ = xlsx.SetColWidth(sheet, "E", "E", 14)

	if err := writeEntriesSheet(xlsx, sheet, entries); err != nil {
		return nil, err
	}
	if err := xlsx.SetSheetName(sheet, entriesSheet); err != nil {
		return nil, err
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntriesSheet(xlsx *excelize.File, sheet string, entries []ledger.Entry) error {
	for i, hdr := range xlsxHeader {
		if err := xlsx.SetCellValue(sheet, cell('A'+rune(i), 1), hdr); err != nil {
			return err
		}
	}
	headerStyle, err := xlsx.NewStyle(mergeStyles(fontBold(), thinBorder("bottom")))
	if err != nil {
		return err
	}
	if err := xlsx.SetCellStyle(sheet, cell('A', 1), cell('E', 1), headerStyle); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		_ = xlsx.SetCellValue(sheet, cell('A', row), e.Date.String())
		_ = xlsx.SetCellValue(sheet, cell('B', row), string(e.Kind))
		_ = xlsx.SetCellValue(sheet, cell('C', row), e.Category)
		_ = xlsx.SetCellValue(sheet, cell('D', row), e.Description)
		_ = xlsx.SetCellValue(sheet, cell('E', row), e.Amount.InexactFloat64())
		row++
	}

	if len(entries) > 0 {
		amountStyle, err := xlsx.NewStyle(amountFormat())
		if err != nil {
			return err
		}
		if err := xlsx.SetCellStyle(sheet, cell('E', 2), cell('E', row-1), amountStyle); err != nil {
			return err
		}
	}

	return xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func amountFormat() *excelize.Style {
	format := "#,##0.00"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func thinBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 1,
		})
	}
	return s
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
