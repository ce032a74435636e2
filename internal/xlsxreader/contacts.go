package xlsxreader

import (
	"fmt"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

// Contact table column headers.
const (
	colContactPlant = "Plant"
	colContactEmail = "Email"
	colContactCC    = "CC"
)

// ContactWarning records a contact row that was skipped rather than
// loaded. Skipping a single malformed contact must not abort the run;
// the remaining plants still get their notifications.
type ContactWarning struct {
	Row    int // 1-based data row number
	Reason string
}

func (w ContactWarning) String() string {
	return fmt.Sprintf("contact row %d skipped: %s", w.Row, w.Reason)
}

// ReadContacts loads the plant contact table. Plant values are trimmed
// because the plant string is the join key against the summary rows.
// Rows without an email address are skipped with a warning. An
// unreadable contacts file or a missing required column is fatal.
func ReadContacts(path string) ([]types.PlantContact, []ContactWarning, error) {
	table, err := ReadWorkbook(path)
	if err != nil {
		return nil, nil, err
	}
	if err := table.RequireColumns(colContactPlant, colContactEmail); err != nil {
		return nil, nil, err
	}

	var contacts []types.PlantContact
	var warnings []ContactWarning

	for i, row := range table.Rows {
		plant := Cell(row, colContactPlant)
		email := Cell(row, colContactEmail)

		switch {
		case plant == "":
			warnings = append(warnings, ContactWarning{Row: i + 1, Reason: "blank plant"})
			continue
		case email == "":
			warnings = append(warnings, ContactWarning{Row: i + 1, Reason: fmt.Sprintf("no email for plant %s", plant)})
			continue
		}

		contacts = append(contacts, types.PlantContact{
			Plant: plant,
			Email: email,
			CC:    Cell(row, colContactCC),
		})
	}

	return contacts, warnings, nil
}
