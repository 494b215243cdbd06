package engine

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Ning0612/drawfolders/internal/domain"
)

// foldText lowercases s and strips diacritics, so "São" folds to "sao" and
// "Straße" to "strasse".
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldLetter), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return letterExpander.Replace(strings.ToLower(folded))
}

// foldLetter maps letters that carry their mark without decomposing
func foldLetter(r rune) rune {
	switch r {
	case 'ø':
		return 'o'
	case 'Ø':
		return 'O'
	case 'đ', 'ð':
		return 'd'
	case 'Đ', 'Ð':
		return 'D'
	case 'ł':
		return 'l'
	case 'Ł':
		return 'L'
	case 'ı':
		return 'i'
	}
	return r
}

// letterExpander spells out ligatures and letters that read as two, after lowercasing
var letterExpander = strings.NewReplacer("ß", "ss", "æ", "ae", "œ", "oe", "þ", "th")

// FilterClients keeps the clients whose code, display name or folder name
// contains query, ignoring case and accents. An empty query returns clients
// unchanged.
func FilterClients(clients []domain.ClientFolder, query string) []domain.ClientFolder {
	if query == "" {
		return clients
	}

	q := foldText(query)
	var matched []domain.ClientFolder
	for _, c := range clients {
		if matchesClient(c, q) {
			matched = append(matched, c)
		}
	}
	return matched
}

func matchesClient(c domain.ClientFolder, foldedQuery string) bool {
	return strings.Contains(foldText(c.Code), foldedQuery) ||
		strings.Contains(foldText(c.DisplayName), foldedQuery) ||
		strings.Contains(foldText(c.Name), foldedQuery)
}

// ResolveClient picks one client for query: an exact code, then an exact
// folder or display name (case and accents ignored), then a single
// FilterClients match.
func ResolveClient(clients []domain.ClientFolder, query string) (domain.ClientFolder, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ClientFolder{}, fmt.Errorf("%w: empty query", domain.ErrClientNotFound)
	}

	var byCode []domain.ClientFolder
	for _, c := range clients {
		if c.HasCode() && c.Code == query {
			byCode = append(byCode, c)
		}
	}
	if len(byCode) == 1 {
		return byCode[0], nil
	}

	q := foldText(query)
	for _, c := range clients {
		if foldText(c.Name) == q || foldText(c.DisplayName) == q {
			return c, nil
		}
	}

	matched := FilterClients(clients, query)
	switch len(matched) {
	case 0:
		return domain.ClientFolder{}, fmt.Errorf("%w: %q", domain.ErrClientNotFound, query)
	case 1:
		return matched[0], nil
	default:
		names := make([]string, 0, len(matched))
		for _, m := range matched {
			names = append(names, m.Name)
		}
		return domain.ClientFolder{}, fmt.Errorf("%w: %q matches %s",
			domain.ErrAmbiguousClient, query, strings.Join(names, ", "))
	}
}
