package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"eventcli/internal/errors"
	"eventcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile reads a registrations CSV from disk
func LoadFile(path string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError("input file not found", err).WithContext("path", path)
		}
		return nil, errors.NewStorageError("open input file", err).WithContext("path", path)
	}
	defer file.Close()

	table, err := ReadTable(file)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded registrations",
		slog.String("path", path),
		slog.Int("rows", table.Len()))
	return table, nil
}

// ReadTable parses a registrations CSV. Columns are located by header name,
// so order does not matter and extra columns are ignored. A leading UTF-8 BOM
// is tolerated.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewSchemaError("input has no header row", "", 0, nil)
	}
	if err != nil {
		return nil, wrapReadError(err)
	}

	columns, err := findColumnIndices(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.Registration
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}

		line, _ := reader.FieldPos(0)
		reg, err := columns.parse(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, reg)
	}

	return &Table{rows: rows}, nil
}

func wrapReadError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.NewSchemaError("malformed CSV", "", parseErr.Line, err)
	}
	return errors.NewStorageError("read input", err)
}

// columnIndices maps each required column to its position in the header
type columnIndices map[string]int

func findColumnIndices(header []string) (columnIndices, error) {
	found := make(map[string]int, len(header))
	for i, col := range header {
		found[strings.TrimSpace(col)] = i
	}

	columns := make(columnIndices, len(domain.Columns))
	var missing []string
	for _, col := range domain.Columns {
		idx, ok := found[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		columns[col] = idx
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError("missing required columns", strings.Join(missing, ","), 1, nil)
	}
	return columns, nil
}

// parse converts one CSV record; line is the record's line in the file
func (c columnIndices) parse(record []string, line int) (domain.Registration, error) {
	get := func(col string) string {
		return strings.TrimSpace(record[c[col]])
	}
	fail := func(col string, cause error) error {
		return errors.NewSchemaError(fmt.Sprintf("invalid %s value %q", col, get(col)), col, line, cause)
	}

	var (
		reg domain.Registration
		err error
	)

	if reg.ID, err = strconv.Atoi(get(domain.ColRegistrationID)); err != nil {
		return reg, fail(domain.ColRegistrationID, err)
	}
	reg.EventName = get(domain.ColEventName)
	reg.EventType = domain.EventType(get(domain.ColEventType))
	reg.EventFormat = domain.EventFormat(get(domain.ColEventFormat))

	if reg.RegistrationDate, err = time.Parse(domain.DateLayout, get(domain.ColRegistrationDate)); err != nil {
		return reg, fail(domain.ColRegistrationDate, err)
	}
	if reg.EventDate, err = time.Parse(domain.DateLayout, get(domain.ColEventDate)); err != nil {
		return reg, fail(domain.ColEventDate, err)
	}

	reg.Channel = get(domain.ColChannelSource)
	reg.JobTitle = get(domain.ColJobTitle)
	reg.Industry = get(domain.ColIndustry)
	reg.CompanySize = get(domain.ColCompanySize)

	if reg.Status, err = domain.ParseAttendanceStatus(get(domain.ColAttendanceStatus)); err != nil {
		return reg, fail(domain.ColAttendanceStatus, err)
	}
	if reg.SessionsRegistered, err = strconv.Atoi(get(domain.ColSessionsRegistered)); err != nil {
		return reg, fail(domain.ColSessionsRegistered, err)
	}
	if reg.SessionsAttended, err = strconv.Atoi(get(domain.ColSessionsAttended)); err != nil {
		return reg, fail(domain.ColSessionsAttended, err)
	}
	if reg.EngagementScore, err = strconv.Atoi(get(domain.ColEngagementScore)); err != nil {
		return reg, fail(domain.ColEngagementScore, err)
	}
	if reg.SurveyCompleted, err = domain.ParseSurveyCompleted(get(domain.ColSurveyCompleted)); err != nil {
		return reg, fail(domain.ColSurveyCompleted, err)
	}
	if reg.AcquisitionCost, err = strconv.ParseFloat(get(domain.ColAcquisitionCost), 64); err != nil {
		return reg, fail(domain.ColAcquisitionCost, err)
	}

	return reg, nil
}

// FormatRecord converts a registration to a CSV record in domain.Columns order
func FormatRecord(r domain.Registration) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.EventName,
		string(r.EventType),
		string(r.EventFormat),
		r.RegistrationDate.Format(domain.DateLayout),
		r.EventDate.Format(domain.DateLayout),
		r.Channel,
		r.JobTitle,
		r.Industry,
		r.CompanySize,
		string(r.Status),
		strconv.Itoa(r.SessionsRegistered),
		strconv.Itoa(r.SessionsAttended),
		strconv.Itoa(r.EngagementScore),
		domain.FormatSurveyCompleted(r.SurveyCompleted),
		strconv.FormatFloat(r.AcquisitionCost, 'f', 2, 64),
	}
}
