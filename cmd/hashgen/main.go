package main

import (
	"fmt"
	"log"
	"os"

	"thooral.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

// hashgen prints a bcrypt hash for the password given as the first
// argument. Handy for seeding accounts directly in the database.
func main() {
	if len(os.Args) < 2 {
		fatalfFn("usage: hashgen <password>")
		return
	}

	hash, err := generateHashFn(os.Args[1])
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("%s\n", hash)
}
