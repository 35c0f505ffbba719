package repository

import (
	"fmt"
	"strings"
)

// PatchSet collects the column assignments of a partial update.
// Only explicitly added columns end up in the update statement.
type PatchSet struct {
	sets []string
	args []interface{}
}

func NewPatchSet() *PatchSet {
	return &PatchSet{sets: []string{}, args: []interface{}{}}
}

func (p *PatchSet) Add(column string, value interface{}) {
	p.args = append(p.args, value)
	p.sets = append(p.sets, fmt.Sprintf("%s=$%d", column, len(p.args)))
}

func (p *PatchSet) Empty() bool {
	return len(p.sets) == 0
}

// Clause returns the set clause, e.g. "team_name=$1,country_code=$2".
func (p *PatchSet) Clause() string {
	return strings.Join(p.sets, ",")
}

// Args returns the collected values plus any extra args appended at the end
// (used for the where clause placeholders following the set clause).
func (p *PatchSet) Args(extra ...interface{}) []interface{} {
	return append(p.args, extra...)
}

// NextPlaceholder returns the placeholder index after the collected args.
func (p *PatchSet) NextPlaceholder() int {
	return len(p.args) + 1
}
