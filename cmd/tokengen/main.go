// Command tokengen mints a bearer token for a configured user id. Add the
// printed value to the user's entry in users.yaml and hand it to the client.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/umbra/uploader/internal/identity"
)

func main() {
	id := flag.Int("id", 0, "numeric user id to embed in the token")
	key := flag.String("key", "", "signing key (random when empty)")
	flag.Parse()

	if *id <= 0 {
		log.Fatal("a positive -id is required")
	}

	token, err := identity.GenerateToken(*id, *key)
	if err != nil {
		log.Fatalf("token generation failed: %v", err)
	}

	fmt.Println(token)
}
