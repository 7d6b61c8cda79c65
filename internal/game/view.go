package game

// Cell is one board square. Status is set only on submitted rows.
type Cell struct {
	Letter string       `json:"letter"`
	Status LetterStatus `json:"status,omitempty"`
}

// Row is one rendered attempt.
type Row struct {
	Cells     []Cell `json:"cells"`
	Submitted bool   `json:"submitted"`
}

// View is a read-only projection of a session: everything a renderer
// needs without re-deriving game rules.
type View struct {
	Date      string   `json:"date"`
	State     State    `json:"state"`
	Rows      []Row    `json:"rows"`
	Active    int      `json:"active"`
	TriesLeft int      `json:"triesLeft"`
	Over      bool     `json:"over"`
	Won       bool     `json:"won"`
	Hint      string   `json:"hint,omitempty"` // only while revealed and not over
	Message   string   `json:"message,omitempty"`
	Keyboard  Keyboard `json:"keyboard"`
}

// View builds the projection.
func (s *Session) View() View {
	v := View{
		Date:      s.Date,
		State:     s.State(),
		Rows:      make([]Row, len(s.Attempts)),
		Active:    s.Active,
		TriesLeft: MaxTries - len(s.Submitted()),
		Over:      s.Over,
		Won:       s.Won,
		Message:   s.Message,
		Keyboard:  BuildKeyboard(s.Attempts, s.Target),
	}
	if s.HintRevealed && !s.Over {
		v.Hint = s.Hint
	}
	for i, a := range s.Attempts {
		row := Row{Cells: make([]Cell, WordLength), Submitted: a.Submitted}
		var statuses []LetterStatus
		if a.Submitted {
			statuses = Evaluate(a.Value, s.Target)
		}
		for j, r := range []rune(a.Value) {
			if j >= WordLength {
				break
			}
			row.Cells[j].Letter = string(r)
			if statuses != nil {
				row.Cells[j].Status = statuses[j]
			}
		}
		v.Rows[i] = row
	}
	return v
}
