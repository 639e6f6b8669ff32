package commands

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmbusd/wmbusd/internal/keystore"
	"github.com/wmbusd/wmbusd/internal/wmbus"
)

var errUnsupportedFormat = errors.New("unsupported output format")

func decodeCmd() *cobra.Command {
	var (
		remote bool
		strict bool
		keys   []string
	)

	cmd := &cobra.Command{
		Use:   "decode <hex-telegram-or-file>",
		Short: "Decode a wM-Bus telegram",
		Long:  "Decode a hex-encoded wM-Bus telegram locally, or against a running wmbusd daemon with --remote.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			hexTelegram, err := readTelegramArg(args[0])
			if err != nil {
				return fmt.Errorf("read telegram: %w", err)
			}

			var out string
			if remote {
				out, err = decodeRemote(serverAddr, hexTelegram)
			} else {
				out, err = decodeLocal(hexTelegram, strict, keys)
			}
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&remote, "remote", false, "call a running wmbusd daemon's POST /decode instead of decoding locally")
	flags.BoolVar(&strict, "strict", false, "reject frames whose length field mismatches the payload")
	flags.StringArrayVar(&keys, "key", nil, "device key in device_id:key hex form (repeatable), supplements the built-in demo keys")

	return cmd
}

// readTelegramArg treats the argument as a path first, falling back to
// treating it as a literal hex string.
func readTelegramArg(arg string) (string, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(arg), nil
}

func decodeLocal(hexTelegram string, strict bool, keyPairs []string) (string, error) {
	store := keystore.NewMemoryStore()
	for _, pair := range keyPairs {
		id, key, err := parseKeyPair(pair)
		if err != nil {
			return "", fmt.Errorf("parse --key %q: %w", pair, err)
		}
		store.UpdateKey(id, key)
	}

	result, err := wmbus.Interpret(wmbus.Telegram{Hex: hexTelegram}, store, wmbus.Config{Strict: strict})
	if err != nil {
		return "", fmt.Errorf("decode telegram: %w", err)
	}

	return formatResult(result, outputFormat)
}

func decodeRemote(addr, hexTelegram string) (string, error) {
	body, err := json.Marshal(map[string]string{"data": hexTelegram})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post("http://"+addr+"/decode", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("call wmbusd: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wmbusd returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var result wmbus.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return formatResult(&result, outputFormat)
}

func formatResult(result *wmbus.Result, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal result: %w", err)
		}
		return string(data) + "\n", nil
	case "json-compact":
		data, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("marshal result: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func parseKeyPair(pair string) (id [4]byte, key []byte, err error) {
	parts := strings.SplitN(pair, ":", 2)
	if len(parts) != 2 {
		return id, nil, errors.New("expected device_id:key")
	}

	idBytes, err := hex.DecodeString(parts[0])
	if err != nil {
		return id, nil, fmt.Errorf("device_id: %w", err)
	}
	if len(idBytes) != 4 {
		return id, nil, fmt.Errorf("device_id must decode to 4 bytes, got %d", len(idBytes))
	}
	copy(id[:], idBytes)

	key, err = hex.DecodeString(parts[1])
	if err != nil {
		return id, nil, fmt.Errorf("key: %w", err)
	}
	if len(key) != 16 {
		return id, nil, fmt.Errorf("key must decode to 16 bytes, got %d", len(key))
	}

	return id, key, nil
}
