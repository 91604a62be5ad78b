// Package articut provides a client for the Articut Chinese text
// segmentation and part-of-speech annotation API.
//
// Articut is a rule-based CJK NLP service operated by Droidtown. This
// package implements a clean, idiomatic Go client for submitting text
// and consuming the returned segmentation and annotation data.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: The main API client with lazy connection setup
//   - Options: Request options carrying the service's documented defaults
//   - Types: Domain models mirroring the service's JSON responses
//   - Tokens: Accessors over the returned POS markup
//   - API: Interface definitions for testability and modularity
//   - Errors: Typed errors for every failure the service reports
//
// # Usage
//
// Create a new client with your account credentials:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := articut.NewClient("user@example.com", "api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	resp, err := client.Parse(ctx, "我想過過過兒過過的日子。")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(resp.Segments())
//	for _, token := range resp.Tokens() {
//		fmt.Printf("%s\t%s\n", token.Text, token.Pos)
//	}
//
// # Features
//
//   - Context-aware API calls with proper cancellation
//   - Request options with server-side defaults filled in
//   - Token extraction helpers for persons, places, times, verbs and nouns
//   - Concurrent batch parsing with bounded fan-out
//   - Typed errors mapped from the service's message strings
//
// # Error Handling
//
// The service reports failures as free-text messages inside an HTTP 200
// response. The client maps every known message onto a sentinel error,
// so callers branch with errors.Is:
//
//	resp, err := client.Parse(ctx, text)
//	switch {
//	case errors.Is(err, articut.ErrQuotaExhausted):
//		// Top up the account
//	case errors.Is(err, articut.ErrRateLimited):
//		// Back off and try again later
//	case articut.IsNetworkError(err):
//		// Transport failure, the request may not have reached the service
//	}
//
// Anything the service reports that is not a known failure phrase is
// treated as a successful parse.
package articut
