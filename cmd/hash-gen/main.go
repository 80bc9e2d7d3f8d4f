// Command hash-gen prints a bcrypt hash for seeding account passwords by hand.
package main

import (
	"fmt"
	"log"
	"os"

	"estate-market.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
	getenvFn       = os.Getenv
)

func resolvePassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if password := getenvFn("MAIN_ADMIN_PASSWORD"); password != "" {
		return password, nil
	}
	return "", fmt.Errorf("usage: hash-gen <password> (or set MAIN_ADMIN_PASSWORD)")
}

func generateHash(password string) (string, error) {
	if !crypto.ValidatePassword(password) {
		return "", fmt.Errorf("%s", crypto.PasswordRequirements)
	}
	return crypto.HashPassword(password)
}

func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
