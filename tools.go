//go:build tools
// +build tools

package contactforme2e

// Import modules for external tools for correct version pinning and usage with "go run ..."
import (
	_ "github.com/playwright-community/playwright-go/cmd/playwright"
)
