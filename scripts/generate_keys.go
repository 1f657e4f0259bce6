//go:build ignore

// This script generates the operator token secret and device API keys.
// Run with: go run scripts/generate_keys.go [devices]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func main() {
	devices := 1
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Invalid device count %q\n", os.Args[1])
			os.Exit(1)
		}
		devices = n
	}

	fmt.Println("=== Picking Service Key Generator ===")
	fmt.Println()

	// Operator token signing key (32 bytes = 256 bits)
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT secret: %v\n", err)
		os.Exit(1)
	}

	// One API key per scanning device (24 bytes each)
	keys := make([]string, 0, devices)
	for range devices {
		key, err := generateSecureKey(24)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
			os.Exit(1)
		}
		keys = append(keys, key)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("AUTH_ENABLED=true")
	fmt.Println("AUTH_OPERATOR_TOKENS=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("API_KEYS=%s\n", strings.Join(keys, ","))
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Give every scanning device its own API key")
	fmt.Println("- Store production keys in a secure secret manager")
}
