package mapreduce

import (
	"fmt"

	"github.com/dtnitsch/keyheat/pkg/analytics"
)

// TopKeys returns the top N keys as "key:count" strings (e.g. "e:1153").
func TopKeys(freq *analytics.Counter[string], n int) []string {
	top := freq.Top(n)
	keys := make([]string, len(top))
	for i, e := range top {
		keys[i] = fmt.Sprintf("%s:%d", e.Key, e.Count)
	}
	return keys
}
