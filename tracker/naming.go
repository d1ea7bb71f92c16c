package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"github.com/flowtimer/flow/internal/models"
)

// taskBaseName seeds auto-generated session names.
const taskBaseName = "New Task"

// nextName derives the next free auto-incremented name from history:
// "New Task 1", "New Task 2", and so on. Only names that are exactly
// the base plus a number advance the counter, so "New Task ideas"
// never does.
func nextName(history []*models.Session) string {
	var maxNum int

	for _, sess := range history {
		if !strings.HasPrefix(sess.Name, taskBaseName) {
			continue
		}

		parts := strings.Split(sess.Name, " ")

		num, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			continue
		}

		if sess.Name != fmt.Sprintf("%s %d", taskBaseName, num) {
			continue
		}

		if num > maxNum {
			maxNum = num
		}
	}

	return fmt.Sprintf("%s %d", taskBaseName, maxNum+1)
}

// SortByName orders sessions by name in natural order, so "New Task
// 10" sorts after "New Task 9" rather than after "New Task 1".
func SortByName(sessions []*models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return natural.Less(sessions[i].Name, sessions[j].Name)
	})
}

// SortByCreation orders sessions newest first.
func SortByCreation(sessions []*models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
