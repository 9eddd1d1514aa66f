// Command hashsecret reads a client secret from stdin and prints its
// Argon2id hash for use as secret_hash in the clients file.
//
//	echo -n 'my-client-secret' | hashsecret
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aussiebroadwan/mcauth/pkg/cryptox"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("failed to read secret from stdin: %v", err)
	}

	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		log.Fatal("secret must not be empty")
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		log.Fatalf("failed to hash secret: %v", err)
	}

	fmt.Println(hash)
}
