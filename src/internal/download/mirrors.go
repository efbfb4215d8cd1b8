package download

import (
	"fmt"
	"math/rand"
	"net/http"
)

// ShuffleMirrors returns the mirror list in a randomized order without
// modifying the input. The random source is injected so tests can pin the
// order with a fixed seed.
func ShuffleMirrors(r *rand.Rand, mirrors []string) []string {
	shuffled := make([]string, len(mirrors))
	copy(shuffled, mirrors)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// FetchFirst tries each URL in order, returning the body of the first that
// responds with a 2xx status and a non-empty body. Individual failures are
// soft; only exhausting the whole list is an error.
func FetchFirst(client *http.Client, urls []string) ([]byte, error) {
	var lastErr error
	for _, url := range urls {
		body, err := Fetch(client, url)
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no mirror URLs configured")
	}
	return nil, lastErr
}
