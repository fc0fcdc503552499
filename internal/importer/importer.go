// Package importer reads the legacy roster spreadsheet export (CSV) into
// roster records.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/normalize"
)

// cpfLength is the digit count of a CPF. Spreadsheets drop leading zeros.
const cpfLength = 11

// Column headers after canonicalization (upper case, accents stripped,
// underscores as spaces).
const (
	colName           = "NOME"
	colCPF            = "CPF"
	colArea           = "ATIVIDADE"
	colLeader         = "LIDER"
	colShift          = "TURNO"
	colEducation      = "ESCOLARIDADE"
	colTitle          = "CARGO ATUAL"
	colStatus         = "SITUACAO"
	colProtected      = "PCD"
	colClassification = "CLASSIFICACAO"
	colSalary         = "SALARIO"
	colAdmission      = "DATA DE ADMISSAO"
	colTenure         = "TEMPO DE EMPRESA"

	colCompetencyPrefix  = "COMPETENCIA "
	colActionStatusPref  = "SITUACAO DA ACAO "
	colActionDescription = "O QUE FAZER "
)

// textColumns are repaired when Options.Repair is set.
var textColumns = []string{colName, colArea, colLeader, colShift, colEducation, colTitle}

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned for input without a header row.
	ErrEmptyFile = errors.New("empty file")
)

// Options tunes parsing.
type Options struct {
	// Comma is the field separator; spreadsheet exports in pt-BR use ';'.
	// Zero selects autodetection from the header line.
	Comma rune
	// Repair applies text repair before storing. Stored rows are repaired on
	// read anyway; this only cleans the data at rest.
	Repair bool
}

// RowError describes a data row that was skipped.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result is the outcome of reading one export.
type Result struct {
	Employees []domain.Employee
	Rows      int
	Skipped   []RowError
	Repaired  int
}

// ReadCSV parses an export. Rows without a CPF or name are skipped and
// reported; later rows win over earlier rows with the same CPF.
func ReadCSV(r io.Reader, opts Options) (*Result, error) {
	header, body, err := splitHeader(r)
	if err != nil {
		return nil, err
	}

	comma := opts.Comma
	if comma == 0 {
		comma = detectComma(header)
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), body))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	names, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := indexColumns(names)
	for _, required := range []string{colCPF, colName} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	res := &Result{}
	positions := make(map[string]int)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", res.Rows+1, err)
		}
		res.Rows++
		line, _ := reader.FieldPos(0)

		row := columns.row(record)
		if opts.Repair {
			res.Repaired += normalize.Fields(row, textColumns...)
			res.Repaired += normalize.Fields(row, actionColumns()...)
		}

		emp, reason := toEmployee(row)
		if reason != "" {
			res.Skipped = append(res.Skipped, RowError{Line: line, Reason: reason})
			continue
		}

		if i, seen := positions[emp.CPF]; seen {
			res.Employees[i] = emp
			continue
		}
		positions[emp.CPF] = len(res.Employees)
		res.Employees = append(res.Employees, emp)
	}

	return res, nil
}

// splitHeader returns the first line (with its newline) and the rest of the
// input, with a UTF-8 byte order mark removed.
func splitHeader(r io.Reader) (string, io.Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", nil, err
	}

	header = strings.TrimPrefix(header, "\ufeff")
	if strings.TrimSpace(header) == "" {
		return "", nil, ErrEmptyFile
	}
	return header, br, nil
}

// detectComma picks ';' when the header has more semicolons than commas.
func detectComma(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

type columnIndex map[string]int

func indexColumns(names []string) columnIndex {
	idx := make(columnIndex, len(names))
	for i, name := range names {
		key := canonicalHeader(name)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// row maps canonical column names to trimmed cell values.
func (c columnIndex) row(record []string) map[string]any {
	row := make(map[string]any, len(c))
	for name, i := range c {
		if i < len(record) {
			row[name] = strings.TrimSpace(record[i])
		}
	}
	return row
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// canonicalHeader upper-cases, strips accents and treats underscores as spaces.
func canonicalHeader(name string) string {
	plain, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), name)
	if err != nil {
		plain = name
	}
	plain = strings.ReplaceAll(plain, "_", " ")
	return strings.Join(strings.Fields(strings.ToUpper(plain)), " ")
}

func actionColumns() []string {
	cols := make([]string, 0, 3*domain.DevelopmentSlots)
	for i := 1; i <= domain.DevelopmentSlots; i++ {
		n := strconv.Itoa(i)
		cols = append(cols, colCompetencyPrefix+n, colActionStatusPref+n, colActionDescription+n)
	}
	return cols
}

func toEmployee(row map[string]any) (domain.Employee, string) {
	get := func(key string) string {
		s, _ := row[key].(string)
		return s
	}

	cpf, ok := normalizeCPF(get(colCPF))
	if !ok {
		return domain.Employee{}, fmt.Sprintf("invalid CPF %q", get(colCPF))
	}
	if get(colName) == "" {
		return domain.Employee{}, "missing name"
	}

	emp := domain.Employee{
		CPF:            cpf,
		Name:           get(colName),
		Area:           get(colArea),
		Leader:         get(colLeader),
		Shift:          get(colShift),
		Education:      get(colEducation),
		CurrentTitle:   get(colTitle),
		Status:         strings.ToUpper(get(colStatus)),
		ProtectedClass: get(colProtected),
		Classification: get(colClassification),
		Salary:         get(colSalary),
		AdmissionDate:  get(colAdmission),
		TenureDays:     parseDays(get(colTenure)),
	}

	for i := range domain.DevelopmentSlots {
		n := strconv.Itoa(i + 1)
		emp.Actions[i] = domain.DevelopmentAction{
			Competency:  get(colCompetencyPrefix + n),
			Status:      get(colActionStatusPref + n),
			Description: get(colActionDescription + n),
		}
	}

	return emp, ""
}

// normalizeCPF keeps digits and restores leading zeros lost by spreadsheets.
func normalizeCPF(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" || len(digits) > cpfLength {
		return "", false
	}
	return strings.Repeat("0", cpfLength-len(digits)) + digits, true
}

// parseDays reads a day count that may carry a decimal part ("1234,0").
func parseDays(raw string) int {
	raw = strings.ReplaceAll(raw, ",", ".")
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}
