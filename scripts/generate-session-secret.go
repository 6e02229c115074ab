package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generated session token secret.")
	fmt.Println("\nAdd this to your .env file:")
	fmt.Println("----------------------------------------")
	fmt.Printf("SESSION_SECRET=%s\n", hex.EncodeToString(secret))
	fmt.Println("----------------------------------------")
}
