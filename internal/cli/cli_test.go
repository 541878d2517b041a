package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/app/session"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

func runScript(t *testing.T, r session.Roster, script string) string {
	t.Helper()
	var out bytes.Buffer
	logger, _ := testutil.NewBufferLogger()
	if err := New(r, strings.NewReader(script), &out, logger).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

func TestEmptyRosterShowsEmptyMessage(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "quit\n")
	if !strings.Contains(out, session.EmptyMessage) {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestAddPlayer(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "add\n23\nMichael Jordan\nSG\nquit\n")

	if store.Len() != 1 {
		t.Fatalf("expected one player, got %d", store.Len())
	}
	p := store.List()[0]
	if p.Number != 23 || p.Name != "Michael Jordan" || p.Position != "SG" {
		t.Fatalf("unexpected player %+v", p)
	}
	if !strings.Contains(out, "Added Michael Jordan (#23).") || !strings.Contains(out, "PPG") {
		t.Fatalf("expected confirmation and table, got %q", out)
	}
}

func TestAddRepromptsOnValidationFailure(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "add\nabc\nLarry Bird\n\n33\n\n\nquit\n")

	if !strings.Contains(out, session.InvalidInputMessage) {
		t.Fatalf("expected validation message, got %q", out)
	}
	if !strings.Contains(out, "Name [Larry Bird]: ") {
		t.Fatalf("expected previous entry offered as default, got %q", out)
	}
	if store.Len() != 1 || store.List()[0].Number != 33 {
		t.Fatalf("expected corrected player saved, got %+v", store.List())
	}
}

func TestEditKeepsDefaultsAndClearsPosition(t *testing.T) {
	store, _ := testutil.NewRoster(t, testutil.SamplePlayer(4))
	out := runScript(t, store, "edit 4\n45\n\n-\nquit\n")

	p, _ := store.Get(4)
	if p.Number != 45 || p.Name != "Michael Jordan" || p.Position != "" {
		t.Fatalf("unexpected edited player %+v", p)
	}
	if p.GamesPlayed != 1072 {
		t.Fatalf("expected stats untouched, got %+v", p)
	}
	if !strings.Contains(out, "Number [23]: ") || !strings.Contains(out, "Updated Michael Jordan.") {
		t.Fatalf("expected edit prompts, got %q", out)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("expected empty position rendered as N/A, got %q", out)
	}
}

func TestEditUnknownPlayer(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "edit 9\nedit\nedit x\nquit\n")
	if !strings.Contains(out, session.MissingPlayerMsg) {
		t.Fatalf("expected missing player message, got %q", out)
	}
	if !strings.Contains(out, "Usage: edit <id> | delete <id>") || !strings.Contains(out, `Invalid player id "x".`) {
		t.Fatalf("expected usage errors, got %q", out)
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	store, _ := testutil.NewRoster(t, testutil.SamplePlayer(1), testutil.SamplePlayer(2))
	out := runScript(t, store, "delete 1\nn\ndelete 2\ny\nquit\n")

	if !strings.Contains(out, session.DeletePrompt+" [y/N] ") {
		t.Fatalf("expected confirmation prompt, got %q", out)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one player left, got %d", store.Len())
	}
	if _, ok := store.Get(1); !ok {
		t.Fatalf("expected declined delete to keep player 1")
	}
	if !strings.Contains(out, "Player deleted.") {
		t.Fatalf("expected delete confirmation, got %q", out)
	}
}

func TestDeleteUnknownSkipsPrompt(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "delete 3\nquit\n")
	if strings.Contains(out, session.DeletePrompt) {
		t.Fatalf("expected no prompt for unknown player, got %q", out)
	}
}

func TestSaveFailureReportsAndReturnsToCommands(t *testing.T) {
	store := roster.New(testutil.NewFailingSlot(), roster.Options{})
	store.Load()
	out := runScript(t, store, "add\n1\nA\n\nlist\nquit\n")

	if !strings.Contains(out, "Could not save player:") {
		t.Fatalf("expected save failure message, got %q", out)
	}
	if store.Len() != 0 {
		t.Fatalf("expected rollback, got %d players", store.Len())
	}
}

func TestHelpUnknownAndEOF(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	out := runScript(t, store, "help\nbogus\n\nadd\n7\n")
	if !strings.Contains(out, "edit <id>") || !strings.Contains(out, `Unknown command "bogus".`) {
		t.Fatalf("expected help and unknown command output, got %q", out)
	}
	if store.Len() != 0 {
		t.Fatalf("expected abandoned form to save nothing")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	store, _ := testutil.NewRoster(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := New(store, strings.NewReader("add\n"), &out, nil).Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "Number") {
		t.Fatalf("expected no commands processed after cancel")
	}
}
