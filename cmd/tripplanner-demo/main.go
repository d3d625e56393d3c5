// README: Manual check of the Gemini trip parser against a few Lagos requests.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "time/tzdata"

	"lagosride/internal/ai"
	"lagosride/internal/modules/booking"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	lagos, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	provider, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("LAGOSRIDE_GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("init trip parser: %v", err)
	}
	defer provider.Close()

	queries := os.Args[1:]
	if len(queries) == 0 {
		queries = []string{
			"I need a bus from Yaba to Lekki tomorrow morning",
			"heading to VI from ikeja on friday",
			"take me to Festac",
		}
	}

	today := time.Now().In(lagos)
	for _, q := range queries {
		fmt.Printf("User: %s\n", q)
		trip, err := provider.ParseTripRequest(ctx, q, booking.Locations, today)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		fmt.Printf("  from=%q to=%q date=%q\n", trip.From, trip.To, trip.Date)
	}
}
