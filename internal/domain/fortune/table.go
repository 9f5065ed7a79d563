package fortune

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Entry is the text and mark shown for one category.
type Entry struct {
	Text string
	Mark Mark
}

// Table is the read-only fortune text table, keyed by "<category>_<number>".
// A nil *Table behaves as an empty table.
type Table struct {
	entries map[string]Entry
}

// Key builds the table key for a category and fortune number.
func Key(c Category, n int) string {
	return string(c) + "_" + strconv.Itoa(n)
}

// NewTable validates and copies entries. Every key must name a known
// category and a fortune number; a recorded mark must be the one MarkFor
// gives that number. Entries without a mark are accepted.
func NewTable(entries map[string]Entry) (*Table, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, k := range keys {
		c, n, err := parseKey(k)
		if err != nil {
			return nil, err
		}
		e := entries[k]
		want := MarkFor(n)
		if e.Mark != MarkNone && e.Mark != want {
			return nil, fmt.Errorf("entry %q records mark %q, number %d has mark %q", k, e.Mark, n, want)
		}
		t.entries[Key(c, n)] = Entry{Text: e.Text, Mark: want}
	}
	return t, nil
}

func parseKey(key string) (Category, int, error) {
	i := strings.LastIndexByte(key, '_')
	if i <= 0 {
		return "", 0, fmt.Errorf("malformed table key %q", key)
	}
	c := Category(key[:i])
	if !c.Valid() {
		return "", 0, fmt.Errorf("table key %q: unknown category %q", key, c)
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil || !IsNumber(n) {
		return "", 0, fmt.Errorf("table key %q: %q is not a fortune number", key, key[i+1:])
	}
	return c, n, nil
}

// Lookup returns the entry for a category and number. The mark is always
// MarkFor(n); on a miss the text is empty.
func (t *Table) Lookup(c Category, n int) Entry {
	mark := MarkFor(n)
	if t == nil {
		return Entry{Mark: mark}
	}
	e, ok := t.entries[Key(c, n)]
	if !ok {
		return Entry{Mark: mark}
	}
	return Entry{Text: e.Text, Mark: mark}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Missing lists the category/number keys that have no entry, in display
// order. A complete table has 44 keys.
func (t *Table) Missing() []string {
	var missing []string
	for _, c := range Categories {
		for _, n := range Numbers {
			k := Key(c, n)
			if t == nil {
				missing = append(missing, k)
				continue
			}
			if _, ok := t.entries[k]; !ok {
				missing = append(missing, k)
			}
		}
	}
	return missing
}
