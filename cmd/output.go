package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/fatih/color"
)

// failure prints the user-facing message for a failed operation and returns
// the detailed error for the exit status
func failure(message string, err error) error {
	fmt.Printf("❌ %s\n", color.RedString(message))
	return fmt.Errorf("%s: %w", message, err)
}

func success(format string, a ...interface{}) {
	fmt.Printf("✅ %s\n", color.GreenString(format, a...))
}

// printResponse writes a gateway response body as indented JSON
func printResponse(resp *api.Response) error {
	if resp == nil {
		fmt.Println("null")
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func networkLabel(network string) string {
	if network == api.NetworkMainnet {
		return color.GreenString("Mainnet")
	}
	return color.YellowString("Testnet")
}
