package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/logger"

	"raffle/internal/models"
)

// utf8BOM keeps spreadsheet tools from guessing the wrong encoding.
const utf8BOM = "\xef\xbb\xbf"

// ErrMalformedRecord marks CSV rows without the name,email[,phone] shape.
var ErrMalformedRecord = errors.New("malformed participant record")

// ImportIssue describes a CSV row that was not imported.
type ImportIssue struct {
	Row    int      `json:"row"`
	Record []string `json:"record"`
	Err    error    `json:"-"`
}

// ImportReport summarizes a participant import.
type ImportReport struct {
	Imported []*models.Participant `json:"imported"`
	Skipped  []ImportIssue         `json:"skipped"`
}

// ImportParticipants registers every name,email[,phone] row of r. The whole
// file is parsed before anything is registered, so an unreadable file changes
// nothing. Rejected rows are skipped and reported. A first row whose second
// column reads "email" is treated as a header.
func (s *RaffleService) ImportParticipants(tenantID string, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ImportReport{}, fmt.Errorf("read participant csv: %w", err)
	}

	report := ImportReport{
		Imported: make([]*models.Participant, 0, len(records)),
		Skipped:  make([]ImportIssue, 0),
	}
	for i, record := range records {
		row := i + 1
		if i == 0 && len(record) >= 2 && strings.EqualFold(strings.TrimSpace(record[1]), "email") {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			logger.Infof("Skipping malformed participant CSV record %d: %v", row, record)
			report.Skipped = append(report.Skipped, ImportIssue{Row: row, Record: record, Err: ErrMalformedRecord})
			continue
		}

		phone := ""
		if len(record) == 3 {
			phone = record[2]
		}
		p, err := s.Register(tenantID, strings.TrimPrefix(record[0], utf8BOM), record[1], phone)
		if err != nil {
			logger.Infof("Skipping participant CSV record %d: %v", row, err)
			report.Skipped = append(report.Skipped, ImportIssue{Row: row, Record: record, Err: err})
			continue
		}
		report.Imported = append(report.Imported, p)
	}
	return report, nil
}

// WriteBoardCSV exports the 100 slots with their occupants.
func (s *RaffleService) WriteBoardCSV(tenantID, locale string, w io.Writer) error {
	rows := [][]string{s.header(locale, "csv.board.header")}
	for _, slot := range s.Board(tenantID) {
		if !slot.Occupied() {
			rows = append(rows, []string{slot.Label(), s.translator.T(locale, "slot.free", nil), "", "", ""})
			continue
		}
		p := slot.Occupant
		rows = append(rows, []string{slot.Label(), s.translator.T(locale, "slot.occupied", nil), p.Name, p.Email, p.Phone})
	}
	return writeCSV(w, rows)
}

// WriteHistoryCSV exports every draw of the session.
func (s *RaffleService) WriteHistoryCSV(tenantID, locale string, w io.Writer) error {
	rows := [][]string{s.header(locale, "csv.history.header")}
	for _, rec := range s.History(tenantID) {
		outcome, name, email := s.translator.T(locale, "draw.void", nil), "", ""
		if !rec.Result.Void {
			outcome = s.translator.T(locale, "draw.winner", nil)
			name, email = rec.Result.Winner.Name, rec.Result.Winner.Email
		}
		generated := make([]string, len(rec.Generated))
		for i, n := range rec.Generated {
			generated[i] = models.FormatSlot(n)
		}
		rows = append(rows, []string{
			strconv.Itoa(rec.Sequence),
			models.FormatSlot(rec.Result.WinningSlot),
			outcome,
			name,
			email,
			strings.Join(generated, " "),
			rec.DrawnAt.Format(time.RFC3339),
		})
	}
	return writeCSV(w, rows)
}

func (s *RaffleService) header(locale, key string) []string {
	return strings.Split(s.translator.T(locale, key, nil), ",")
}

func writeCSV(w io.Writer, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
