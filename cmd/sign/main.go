package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"escrow/internal/auth"

	"github.com/google/uuid"
)

// Emits the X-Timestamp, X-Nonce and X-Signature headers for a request
// body read from a file or stdin. Handy for curl and manual testing.
func main() {
	secret := flag.String("secret", os.Getenv("HMAC_SECRET"), "HMAC secret (defaults to HMAC_SECRET)")
	bodyFile := flag.String("body", "-", "file with the request body, - for stdin")
	nonce := flag.String("nonce", "", "nonce to use (default: random uuid)")
	flag.Parse()

	if *secret == "" {
		log.Fatal("-secret or HMAC_SECRET is required")
	}

	var body []byte
	var err error
	if *bodyFile == "-" {
		body, err = io.ReadAll(os.Stdin)
	} else {
		body, err = os.ReadFile(*bodyFile)
	}
	if err != nil {
		log.Fatalf("read body: %v", err)
	}

	n := *nonce
	if n == "" {
		n = uuid.NewString()
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	fmt.Printf("X-Timestamp: %s\n", ts)
	fmt.Printf("X-Nonce: %s\n", n)
	fmt.Printf("X-Signature: %s\n", auth.Sign(*secret, body, ts, n))
}
