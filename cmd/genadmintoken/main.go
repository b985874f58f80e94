// Command genadmintoken creates the admin token that guards POST /api/init-data.
// The bcrypt hash goes to admin_token.hash; the token itself is printed once.
package main

import (
	"errors"
	"fmt"
	"os"

	"serpentaware/internal/auth"
	"serpentaware/internal/crypto"
)

const hashFile = "admin_token.hash"

// writeHash creates path and writes hash to it. An existing file is never
// overwritten, even one created after the caller last looked.
func writeHash(path, hash string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s already exists. Refusing to overwrite", path)
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(hash + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func main() {
	token, err := crypto.GenerateToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
	hash, err := auth.HashToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}
	if err := writeHash(hashFile, hash); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token hash written to %s\n", hashFile)
	fmt.Println("Set admin.token_hash_file to that path and keep this token; it is not shown again:")
	fmt.Println(token)
}
