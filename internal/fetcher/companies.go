// Package fetcher loads company lists for batch research from CSV and XLSX
// files.
package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-cli/internal/model"
)

// ReadCSV parses companies from CSV. Expected columns are name and an
// optional website; a header row with a "name" cell is skipped.
func ReadCSV(r io.Reader) ([]model.CompanyInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	var companies []model.CompanyInput
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read csv")
		}

		if first {
			first = false
			if isHeaderRow(record) {
				continue
			}
		}

		if c, ok := rowToCompany(record); ok {
			companies = append(companies, c)
		}
	}

	return companies, nil
}

// ReadXLSX parses companies from the first sheet of an XLSX file, same
// column convention as ReadCSV.
func ReadXLSX(path string) ([]model.CompanyInput, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("fetcher: xlsx has no sheets")
	}

	var companies []model.CompanyInput
	for i, row := range f.Sheets[0].Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}

		if i == 0 && isHeaderRow(cells) {
			continue
		}
		if c, ok := rowToCompany(cells); ok {
			companies = append(companies, c)
		}
	}

	return companies, nil
}

// isHeaderRow detects a leading header like "name,website".
func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name")
}

// rowToCompany maps a row to a CompanyInput. Rows without a name are skipped.
func rowToCompany(record []string) (model.CompanyInput, bool) {
	if len(record) == 0 {
		return model.CompanyInput{}, false
	}
	c := model.CompanyInput{Name: strings.TrimSpace(record[0])}
	if c.Name == "" {
		return model.CompanyInput{}, false
	}
	if len(record) > 1 {
		c.Website = strings.TrimSpace(record[1])
	}
	return c, true
}
