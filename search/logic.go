package search

import (
	"context"
	"sort"
	"sync"

	"fitgrid/rdx"
)

// GetIndexedResults returns the ids present in the index for every token of
// the query (intersection), newest first, capped at limit.
func GetIndexedResults(ctx context.Context, entityType, query string, limit int) ([]string, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	type tokenList struct {
		ids []string
		err error
	}
	tl := make([]tokenList, len(tokens))

	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			ids, err := rdx.Conn.ZRevRange(ctx, invertedKey(entityType, token), 0, -1).Result()
			tl[i] = tokenList{ids: ids, err: err}
		}(i, token)
	}
	wg.Wait()

	for _, t := range tl {
		if t.err != nil {
			return nil, t.err
		}
		if len(t.ids) == 0 {
			return nil, nil
		}
	}

	// intersect starting from the smallest candidate set
	sort.Slice(tl, func(i, j int) bool { return len(tl[i].ids) < len(tl[j].ids) })
	base := tl[0].ids

	otherSets := make([]map[string]struct{}, len(tl)-1)
	for i := 1; i < len(tl); i++ {
		m := make(map[string]struct{}, len(tl[i].ids))
		for _, id := range tl[i].ids {
			m[id] = struct{}{}
		}
		otherSets[i-1] = m
	}

	out := make([]string, 0, len(base))
	for _, id := range base {
		match := true
		for _, s := range otherSets {
			if _, ok := s[id]; !ok {
				match = false
				break
			}
		}
		if match {
			out = append(out, id)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
