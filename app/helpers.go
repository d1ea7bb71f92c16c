package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/store"
	"github.com/flowtimer/flow/tracker"
)

var (
	errMissingID   = errors.New("a session id is required")
	errMissingName = errors.New("a name is required")

	errNothingToResume = errors.New("no resumable session was found")
)

// confirm prints a warning and blocks until the user presses ENTER.
// Any other input aborts.
func confirm(warning string) bool {
	fmt.Fprint(os.Stdout, pterm.Warning.Sprint(warning+". Press ENTER to proceed"))

	reader := bufio.NewReader(os.Stdin)

	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return input == "\n" || input == "\r\n"
}

// lastResumableID finds the most recently created archived session
// that is not in the trash.
func lastResumableID(db store.DB) (string, error) {
	sessions, err := db.GetSessions(time.Time{}, time.Time{}, "")
	if err != nil {
		return "", err
	}

	var resumable []*models.Session

	for _, sess := range sessions {
		if sess.IsFinished && !sess.Trashed() {
			resumable = append(resumable, sess)
		}
	}

	if len(resumable) == 0 {
		return "", errNothingToResume
	}

	tracker.SortByCreation(resumable)

	return resumable[0].ID, nil
}
