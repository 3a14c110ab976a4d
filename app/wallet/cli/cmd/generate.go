package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new private key",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			log.Fatal(err)
		}

		path := getPrivateKeyPath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatal(err)
		}

		if err := crypto.SaveECDSA(path, privateKey); err != nil {
			log.Fatal(err)
		}

		log.Printf("wrote private key: %s", path)
		log.Printf("account address: %s", crypto.PubkeyToAddress(privateKey.PublicKey).String())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
