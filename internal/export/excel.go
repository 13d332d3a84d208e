package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetSpec is one workbook sheet: a header row followed by data rows.
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// WriteXLSX builds a workbook from the dataset and saves it at path.
// The driver sheet always comes first; related sheets follow when the
// dataset carries them.
func (e *Exporter) WriteXLSX(path string, ds *Dataset) error {
	sheets := []SheetSpec{driverSheet(ds.Drivers)}
	if len(ds.Services) > 0 {
		sheets = append(sheets, referentialSheet("Services", ds.ServiceRows()))
	}
	if len(ds.Sites) > 0 {
		sheets = append(sheets, siteSheet(ds))
	}
	if len(ds.Companies) > 0 {
		sheets = append(sheets, referentialSheet("Societes", ds.CompanyRows()))
	}

	f, err := buildWorkbook(sheets)
	if err != nil {
		return err
	}
	return f.SaveAs(path)
}

func driverSheet(records []DriverRecord) SheetSpec {
	header := []string{"ID", "ERP", "Nom", "Prenom", "Date naissance", "Date entree", "Date sortie", "Service", "Site", "Societe", "Interim"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		interim := "non"
		if r.IsTemp {
			interim = "oui"
		}
		rows = append(rows, []string{
			strconv.FormatUint(r.ID, 10),
			r.ERPID,
			r.LastName,
			r.FirstName,
			r.BirthDate,
			r.HireDate,
			r.LeaveDate,
			r.Service,
			r.Site,
			r.Company,
			interim,
		})
	}
	return SheetSpec{Title: "Conducteurs", Header: header, Rows: rows}
}

func referentialSheet(title string, rows [][]string) SheetSpec {
	return SheetSpec{
		Title:  title,
		Header: []string{"ID", "Nom"},
		Rows:   rows,
	}
}

func siteSheet(ds *Dataset) SheetSpec {
	rows := make([][]string, 0, len(ds.Sites))
	for _, s := range ds.Sites {
		rows = append(rows, []string{strconv.FormatUint(s.ID, 10), s.Name, s.PostalCode})
	}
	return SheetSpec{
		Title:  "Sites",
		Header: []string{"ID", "Nom", "Code postal"},
		Rows:   rows,
	}
}

// ServiceRows flattens the related services for the workbook.
func (ds *Dataset) ServiceRows() [][]string {
	rows := make([][]string, 0, len(ds.Services))
	for _, s := range ds.Services {
		rows = append(rows, []string{strconv.FormatUint(s.ID, 10), s.Name})
	}
	return rows
}

// CompanyRows flattens the related companies for the workbook.
func (ds *Dataset) CompanyRows() [][]string {
	rows := make([][]string, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		rows = append(rows, []string{strconv.FormatUint(c.ID, 10), c.Name})
	}
	return rows
}

func buildWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width heuristic: header length against the first rows.
		for c := 1; c <= len(s.Header); c++ {
			widest := len(s.Header[c-1])
			limit := len(s.Rows)
			if limit > 50 {
				limit = 50
			}
			for r := 0; r < limit; r++ {
				if c <= len(s.Rows[r]) {
					if l := len(s.Rows[r][c-1]); l > widest {
						widest = l
					}
				}
			}
			w := float64(widest) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return f, nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
