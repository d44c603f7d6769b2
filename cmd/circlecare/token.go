package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/principal"
)

var (
	tokenPrincipal string
	tokenPubKey    string
	tokenMainnet   bool

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a principal",
		Long: `Mint a bearer token signed with the configured JWT secret.
The principal is given directly with --principal, or derived from a
hex-encoded secp256k1 public key with --pubkey.`,
		RunE: runToken,
	}

	hashKeyCmd = &cobra.Command{
		Use:   "hash-key [api-key]",
		Short: "Print the bcrypt hash to configure for an API key",
		Long:  "Print the bcrypt hash of an API key. Reads the key from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHashKey,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenPrincipal, "principal", "", "principal the token acts as")
	tokenCmd.Flags().StringVar(&tokenPubKey, "pubkey", "", "hex public key to derive the principal from")
	tokenCmd.Flags().BoolVar(&tokenMainnet, "mainnet", false, "derive a mainnet (SP) principal from --pubkey")
	tokenCmd.MarkFlagsMutuallyExclusive("principal", "pubkey")
	tokenCmd.MarkFlagsOneRequired("principal", "pubkey")
}

// resolvePrincipal returns the principal named by the flags.
func resolvePrincipal() (string, error) {
	if tokenPrincipal != "" {
		if err := principal.Validate(tokenPrincipal); err != nil {
			return "", err
		}
		return tokenPrincipal, nil
	}
	key, err := hex.DecodeString(strings.TrimPrefix(tokenPubKey, "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid public key: %w", err)
	}
	version := principal.TestnetSingleSig
	if tokenMainnet {
		version = principal.MainnetSingleSig
	}
	return principal.FromPublicKey(version, key)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := resolvePrincipal()
	if err != nil {
		return err
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration).Generate(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "principal: %s\n", p)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runHashKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, 4096))
		if err != nil {
			return err
		}
		key = strings.TrimSpace(string(data))
	}
	if key == "" {
		return errors.New("api key is required")
	}

	hash, err := auth.HashKey(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
