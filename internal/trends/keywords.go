package trends

import (
	"sort"
	"strings"
	"unicode"
)

// KeywordEntry is a (term, count) pair. Result sets are ordered by
// descending count, ties by first-encountered order so output is
// deterministic within a run.
type KeywordEntry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Extractor computes the top-K frequent terms across a batch of texts.
// Available distinguishes the n-gram vectorizer from the naive fallback.
type Extractor interface {
	Available() bool
	Extract(texts []string, topK int) []KeywordEntry
}

// NewExtractor selects the extraction strategy once at startup.
func NewExtractor() Extractor {
	return &NGramExtractor{MaxVocabulary: 3000}
}

// NGramExtractor counts unigrams and bigrams jointly across all texts,
// excluding standard English stopwords, with the vocabulary capped at the
// most frequent MaxVocabulary terms.
type NGramExtractor struct {
	MaxVocabulary int
}

func (e *NGramExtractor) Available() bool { return true }

func (e *NGramExtractor) Extract(texts []string, topK int) []KeywordEntry {
	if len(texts) == 0 || topK < 1 {
		return []KeywordEntry{}
	}

	counts := make(map[string]int)
	var order []string // first-encountered order for deterministic ties

	add := func(term string) {
		if _, seen := counts[term]; !seen {
			order = append(order, term)
		}
		counts[term]++
	}

	for _, text := range texts {
		tokens := vectorTokens(text)
		for i, tok := range tokens {
			add(tok)
			if i+1 < len(tokens) {
				add(tok + " " + tokens[i+1])
			}
		}
	}

	entries := make([]KeywordEntry, 0, len(order))
	for _, term := range order {
		entries = append(entries, KeywordEntry{Term: term, Count: counts[term]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	maxVocab := e.MaxVocabulary
	if maxVocab <= 0 {
		maxVocab = 3000
	}
	if len(entries) > maxVocab {
		entries = entries[:maxVocab]
	}
	if len(entries) > topK {
		entries = entries[:topK]
	}
	return entries
}

// vectorTokens lowercases, splits on non-alphanumerics, and drops
// single-character tokens and stopwords. Bigrams are formed after stopword
// removal, from what remains.
func vectorTokens(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len([]rune(tok)) < 2 || englishStopwords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// FallbackExtractor is the degraded strategy: a single stopword-filtered
// token count, no n-grams.
type FallbackExtractor struct{}

var fillerWords = map[string]bool{
	"the": true, "from": true, "says": true, "and": true, "or": true,
	"a": true, "an": true, "to": true, "in": true, "of": true,
	"on": true, "for": true, "with": true,
}

func (FallbackExtractor) Available() bool { return false }

func (FallbackExtractor) Extract(texts []string, topK int) []KeywordEntry {
	if len(texts) == 0 || topK < 1 {
		return []KeywordEntry{}
	}

	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			var b strings.Builder
			for _, r := range word {
				if unicode.IsLetter(r) || unicode.IsDigit(r) {
					b.WriteRune(r)
				}
			}
			w := b.String()
			if len([]rune(w)) < 3 || fillerWords[w] {
				continue
			}
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	entries := make([]KeywordEntry, 0, len(order))
	for _, term := range order {
		entries = append(entries, KeywordEntry{Term: term, Count: counts[term]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}
	return entries
}
