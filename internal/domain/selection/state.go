package selection

import (
	"time"

	"github.com/dailyseven/dailyseven-api/internal/domain"
)

// SelectionSize is the maximum number of tasks assigned per day.
const SelectionSize = 7

// State is a user's selection state decoded from storage.
// Done is a true set (duplicates never enter it through Tick). List is an
// order-preserving sequence that may, per the storage format, contain
// duplicates. Date is nil until a selection has been generated.
type State struct {
	Done []int64
	List []int64
	Date *time.Time
}

// StateFromUser decodes the persisted selection fields of a user.
// Returns an error if either stored list is malformed.
func StateFromUser(u *domain.User) (State, error) {
	done, err := ParseList(u.DoneList)
	if err != nil {
		return State{}, err
	}

	list, err := ParseList(u.SlnList)
	if err != nil {
		return State{}, err
	}

	return State{Done: done, List: list, Date: u.SlnDate}, nil
}

// HasCurrent reports whether the state holds a selection generated on the
// same calendar day as now. Staleness is exact-day equality, not a rolling
// window.
func (s State) HasCurrent(now time.Time) bool {
	if s.Date == nil || len(s.List) == 0 {
		return false
	}
	return SameDay(*s.Date, now)
}

// IsDone reports whether the task id is in the done set.
func (s State) IsDone(id int64) bool {
	return containsID(s.Done, id)
}

// InSelection reports whether the task id is in the current selection list.
func (s State) InSelection(id int64) bool {
	return containsID(s.List, id)
}

// Exclusion returns the union of the selection list and the done set,
// deduplicated. Tasks in this set must never be offered as replacements.
func (s State) Exclusion() []int64 {
	seen := make(map[int64]struct{}, len(s.List)+len(s.Done))
	out := make([]int64, 0, len(s.List)+len(s.Done))
	for _, id := range s.List {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range s.Done {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Tick returns the done set with id inserted. The operation is idempotent:
// if id is already present the set is returned unchanged and changed is
// false. The input slice is never mutated.
func Tick(done []int64, id int64) (result []int64, changed bool) {
	if containsID(done, id) {
		return done, false
	}

	out := make([]int64, len(done), len(done)+1)
	copy(out, done)
	return append(out, id), true
}

// ReplaceTask returns a copy of list with every occurrence of oldID
// replaced by newID. Length and order are preserved; if oldID appears more
// than once, all occurrences are replaced since the list is not
// deduplicated by construction.
func ReplaceTask(list []int64, oldID, newID int64) []int64 {
	out := make([]int64, len(list))
	for i, id := range list {
		if id == oldID {
			out[i] = newID
		} else {
			out[i] = id
		}
	}
	return out
}

// SameDay reports whether a and b fall on the same calendar date. Each
// side's own Y/M/D is compared without location conversion: stored dates
// come back from a DATE column as midnight UTC while now is server-local,
// and converting one into the other's zone would shift the calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight normalizes t to 00:00:00 on its calendar date, which is the
// form selection dates are persisted in.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
