// Package session holds presentation state for editing the roster: which
// player (if any) the open form edits, plus the command handlers a UI
// binding calls for add, edit, delete and submit.
package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

const (
	DeletePrompt        = "Are you sure you want to delete this player?"
	InvalidInputMessage = "Please enter player number and name."
	MissingPlayerMsg    = "That player no longer exists."
	EmptyMessage        = "No players added yet. Add a new player to get started!"
)

// Roster is the subset of the roster store a session drives.
type Roster interface {
	List() []players.Player
	Get(id int64) (players.Player, bool)
	Create(number, name, position string) (players.Player, error)
	Update(id int64, number, name, position string) (players.Player, bool, error)
	Delete(id int64) (bool, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// Form carries the raw player form values.
type Form struct {
	Number   string
	Name     string
	Position string
}

// SubmitResult describes what a form submission did.
type SubmitResult struct {
	Player  players.Player
	Created bool
	// Found is false when the player being edited disappeared before submit.
	Found   bool
	Message string
}

// Session is per-user UI state. It is not safe for concurrent use.
type Session struct {
	roster    Roster
	editingID int64
	editing   bool
	open      bool
}

// New returns a session with the form closed.
func New(r Roster) *Session {
	return &Session{roster: r}
}

// OnCreate opens a blank form for a new player.
func (s *Session) OnCreate() Form {
	s.editing = false
	s.editingID = 0
	s.open = true
	return Form{}
}

// OnEdit opens the form filled from the player with id. It reports false,
// leaving state untouched, when the player does not exist.
func (s *Session) OnEdit(id int64) (Form, bool) {
	p, ok := s.roster.Get(id)
	if !ok {
		return Form{}, false
	}
	s.editing = true
	s.editingID = id
	s.open = true
	return Form{
		Number:   strconv.Itoa(p.Number),
		Name:     p.Name,
		Position: p.Position,
	}, true
}

// OnCancel closes the form without saving.
func (s *Session) OnCancel() {
	s.editing = false
	s.editingID = 0
	s.open = false
}

// Editing returns the id the open form edits.
func (s *Session) Editing() (int64, bool) {
	return s.editingID, s.editing
}

// FormOpen reports whether a form is awaiting submission.
func (s *Session) FormOpen() bool {
	return s.open
}

// OnSubmit saves the form: an update when editing, a create otherwise.
// Validation failures keep the form open with InvalidInputMessage so the
// user can correct it.
func (s *Session) OnSubmit(f Form) (SubmitResult, error) {
	if s.editing {
		p, found, err := s.roster.Update(s.editingID, f.Number, f.Name, f.Position)
		if err != nil {
			return SubmitResult{Found: found, Message: messageFor(err)}, err
		}
		s.OnCancel()
		if !found {
			return SubmitResult{Message: MissingPlayerMsg}, nil
		}
		return SubmitResult{Player: p, Found: true}, nil
	}

	p, err := s.roster.Create(f.Number, f.Name, f.Position)
	if err != nil {
		return SubmitResult{Message: messageFor(err)}, err
	}
	s.OnCancel()
	return SubmitResult{Player: p, Created: true, Found: true}, nil
}

// OnDelete removes the player after confirm agrees. A nil confirm deletes
// without asking.
func (s *Session) OnDelete(id int64, confirm Confirmer) (bool, error) {
	if confirm != nil && !confirm(DeletePrompt) {
		return false, nil
	}
	found, err := s.roster.Delete(id)
	if err != nil {
		return found, err
	}
	if found && s.editing && s.editingID == id {
		s.OnCancel()
	}
	return found, nil
}

func messageFor(err error) string {
	if errors.Is(err, roster.ErrValidation) {
		return InvalidInputMessage
	}
	return fmt.Sprintf("Could not save player: %v", err)
}
