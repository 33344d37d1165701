// Package relation holds the filter semantics shared by both symmetric
// relation types (friendships and task assignments).
package relation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Filter narrows a relationship listing. PartyA and PartyB address the two
// directional storage roles; Accepted is tri-state (nil means either).
type Filter struct {
	PartyA   *uuid.UUID
	PartyB   *uuid.UUID
	Accepted *bool
}

// Predicate builds the WHERE fragment for f over the given columns, starting
// at placeholder $argIndex. It returns the fragment without the WHERE keyword
// (empty when the filter is empty) and the positional args to bind.
//
// When both parties are supplied with the same value, the caller is asking
// for every row involving that party regardless of role, so the value is
// bound twice across an OR. Different values require an exact directional
// match. A single supplied party matches its own column only.
func Predicate(partyACol, partyBCol, acceptedCol string, f Filter, argIndex int) (string, []any) {
	var conds []string
	var args []any
	idx := argIndex

	switch {
	case f.PartyA != nil && f.PartyB != nil:
		if *f.PartyA == *f.PartyB {
			conds = append(conds, fmt.Sprintf("(%s = $%d OR %s = $%d)", partyACol, idx, partyBCol, idx+1))
			args = append(args, *f.PartyA, *f.PartyA)
		} else {
			conds = append(conds, fmt.Sprintf("%s = $%d", partyACol, idx), fmt.Sprintf("%s = $%d", partyBCol, idx+1))
			args = append(args, *f.PartyA, *f.PartyB)
		}
		idx += 2
	case f.PartyA != nil:
		conds = append(conds, fmt.Sprintf("%s = $%d", partyACol, idx))
		args = append(args, *f.PartyA)
		idx++
	case f.PartyB != nil:
		conds = append(conds, fmt.Sprintf("%s = $%d", partyBCol, idx))
		args = append(args, *f.PartyB)
		idx++
	}

	if f.Accepted != nil {
		conds = append(conds, fmt.Sprintf("%s = $%d", acceptedCol, idx))
		args = append(args, *f.Accepted)
	}

	return strings.Join(conds, " AND "), args
}
