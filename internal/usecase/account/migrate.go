package account

import (
	"maps"
	"reflect"
	"slices"
	"sort"

	"github.com/bluemanta7/MantaMind/internal/entity"
)

// migrateUsers upgrades every account in place and returns the sorted
// usernames whose stored form changed.
func migrateUsers(users map[string]*entity.UserAccount) []string {
	var changed []string
	for name, acct := range users {
		if migrateAccount(acct) {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)
	return changed
}

// migrateAccount merges the legacy wordProgress counters into wordStreaks,
// keeping the larger counter per word, and restores the account invariants.
func migrateAccount(acct *entity.UserAccount) bool {
	before := *acct
	before.LearnedWords = slices.Clone(acct.LearnedWords)
	before.InProgressWords = slices.Clone(acct.InProgressWords)
	before.WordStreaks = maps.Clone(acct.WordStreaks)

	if acct.WordStreaks == nil {
		acct.WordStreaks = map[string]int{}
	}
	for word, n := range acct.WordProgress {
		if n > acct.WordStreaks[word] {
			acct.WordStreaks[word] = n
		}
	}
	acct.WordProgress = nil
	if acct.LearnedWords == nil {
		acct.LearnedWords = []string{}
	}
	if acct.InProgressWords == nil {
		acct.InProgressWords = []string{}
	}
	acct.Normalize()

	return before.WordProgress != nil || !reflect.DeepEqual(before, *acct)
}

