// Gera um hash bcrypt para cadastrar usuários à mão:
//
//	go run ./cmd/genhash 'senha'
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const custoBcrypt = 12

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <senha>")
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), custoBcrypt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "genhash:", err)
		os.Exit(1)
	}
	fmt.Println(string(h))
}
