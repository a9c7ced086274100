package wordcount

import (
	"sort"
	"strings"
	"unicode"
)

// Entry is one row of the frequency table.
type Entry struct {
	Word  string
	Count int
}

// Table tallies word occurrences and remembers the order in which each word
// was first seen.
type Table struct {
	counts map[string]int
	order  []string
	total  int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		counts: make(map[string]int),
	}
}

// Count builds a Table from tokens.
func Count(tokens []string) *Table {
	t := NewTable()
	for _, tok := range tokens {
		t.Add(tok)
	}
	return t
}

// Add records one occurrence of word.
func (t *Table) Add(word string) {
	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word]++
	t.total++
}

// Len returns the number of distinct words.
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the number of words added.
func (t *Table) Total() int {
	return t.total
}

// Count returns the occurrences of word.
func (t *Table) Count(word string) int {
	return t.counts[word]
}

// Sorted returns the table ordered by descending count. Words with the same
// count keep the order in which they were first seen.
func (t *Table) Sorted() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, w := range t.order {
		entries = append(entries, Entry{Word: w, Count: t.counts[w]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Tokenize splits text into lowercase words. A word is a maximal run of
// letters, numbers and underscores; every other rune separates words.
func Tokenize(text string) []string {
	var (
		tokens []string
		start  = -1
	)

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, strings.ToLower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, strings.ToLower(text[start:]))
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
