package cmd

import (
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

// challengeResponse is the node's answer to a challenge request.
type challengeResponse struct {
	Address string `json:"address"`
	Message string `json:"message"`
}

// challengeCmd represents the challenge command.
var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Request an ownership challenge for the account",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}
		address := crypto.PubkeyToAddress(privateKey.PublicKey).String()

		message, err := requestChallenge(address)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(message)
	},
}

func init() {
	rootCmd.AddCommand(challengeCmd)
}

// requestChallenge asks the node for a fresh signable challenge message.
func requestChallenge(address string) (string, error) {
	var result challengeResponse

	client := resty.New().SetBaseURL(nodeURL)
	resp, err := client.R().SetResult(&result).Get("/v1/challenge/" + address)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("challenge request failed: %s", resp.Status())
	}

	return result.Message, nil
}
