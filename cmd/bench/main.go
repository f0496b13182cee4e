// README: Synthetic trip-lifecycle load generator for a running API instance.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	baseURL  = flag.String("url", "http://localhost:8080", "API base URL")
	drivers  = flag.Int("drivers", 10, "number of synthetic drivers")
	rounds   = flag.Int("rounds", 25, "trip rounds per driver")
	parallel = flag.Int("parallel", 4, "concurrent workers per driver")
)

func main() {
	flag.Parse()
	client := &http.Client{Timeout: 10 * time.Second}

	var sent, conflicts, failures int64
	var wg sync.WaitGroup
	start := time.Now()

	for d := 0; d < *drivers; d++ {
		driverID := uuid.NewString()
		if code := post(client, fmt.Sprintf("%s/api/drivers/%s/metrics/init", *baseURL, driverID), nil); code >= 300 {
			log.Fatalf("init driver %s: status %d", driverID, code)
		}
		for w := 0; w < *parallel; w++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < *rounds; i++ {
					for _, ev := range tripRound() {
						url := fmt.Sprintf("%s/api/drivers/%s/trips/%s", *baseURL, id, ev.name)
						code := post(client, url, ev.body)
						atomic.AddInt64(&sent, 1)
						switch {
						case code == http.StatusConflict:
							atomic.AddInt64(&conflicts, 1)
						case code >= 300:
							atomic.AddInt64(&failures, 1)
						}
					}
				}
			}(driverID)
		}
	}

	wg.Wait()
	elapsed := time.Since(start)
	fmt.Printf("sent=%d conflicts=%d failures=%d elapsed=%s rate=%.0f/s\n",
		sent, conflicts, failures, elapsed, float64(sent)/elapsed.Seconds())
}

type event struct {
	name string
	body []byte
}

// tripRound emits one plausible request lifecycle: always a request, then an
// accept/reject/cancel outcome weighted toward acceptance.
func tripRound() []event {
	events := []event{{name: "requested"}}
	switch r := rand.Float64(); {
	case r < 0.75:
		events = append(events, event{name: "accepted"}, event{name: "completed"})
	case r < 0.90:
		events = append(events, event{name: "rejected"})
	default:
		events = append(events,
			event{name: "accepted"},
			event{name: "cancelled", body: []byte(`{"reason":"other"}`)},
		)
	}
	return events
}

func post(client *http.Client, url string, body []byte) int {
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("post %s: %v", url, err)
		return 0
	}
	defer resp.Body.Close()
	return resp.StatusCode
}
