package cmd

import (
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/starledger/starledger/foundation/registry/signature"
)

var (
	dec           string
	ra            string
	mag           string
	constellation string
	story         string
)

// starSubmission is the request body for registering a star.
type starSubmission struct {
	Address   string  `json:"address"`
	Message   string  `json:"message"`
	Signature string  `json:"signature"`
	Star      starDoc `json:"star"`
}

// starDoc carries the star information inside a submission.
type starDoc struct {
	Dec           string `json:"dec"`
	RA            string `json:"ra"`
	Mag           string `json:"mag,omitempty"`
	Constellation string `json:"constellation,omitempty"`
	Story         string `json:"story"`
}

// submitCmd represents the submit command. It performs the whole ownership
// flow: request a challenge, sign it, and submit the star.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Sign a fresh challenge and submit a star",
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

		v, r, s, err := signature.Sign(message, privateKey)
		if err != nil {
			log.Fatal(err)
		}

		submission := starSubmission{
			Address:   address,
			Message:   message,
			Signature: signature.SignatureString(v, r, s),
			Star: starDoc{
				Dec:           dec,
				RA:            ra,
				Mag:           mag,
				Constellation: constellation,
				Story:         story,
			},
		}

		client := resty.New().SetBaseURL(nodeURL)
		resp, err := client.R().SetBody(submission).Post("/v1/star/submit")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("star submission failed: %s: %s", resp.Status(), resp.Body())
		}

		fmt.Println(string(resp.Body()))
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVar(&dec, "dec", "", "Declination of the star.")
	submitCmd.Flags().StringVar(&ra, "ra", "", "Right ascension of the star.")
	submitCmd.Flags().StringVar(&mag, "mag", "", "Magnitude of the star.")
	submitCmd.Flags().StringVar(&constellation, "constellation", "", "Constellation the star belongs to.")
	submitCmd.Flags().StringVar(&story, "story", "", "Story to record with the star.")
	submitCmd.MarkFlagRequired("dec")
	submitCmd.MarkFlagRequired("ra")
	submitCmd.MarkFlagRequired("story")
}
