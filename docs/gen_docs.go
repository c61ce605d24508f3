//go:build ignore

// gen_docs.go writes one markdown page per playctl command.
//
// Usage:
//
//	go run gen_docs.go [output-dir]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gitops-playground/playctl/pkg/cli/cmd"
	"github.com/spf13/cobra/doc"
)

const dirPermissions = 0o750

func main() {
	outputDir := "cli"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		log.Fatal(fmt.Errorf("create %s: %w", outputDir, err))
	}

	root := cmd.NewRootCmd("dev", "none", "unknown")
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, outputDir); err != nil {
		log.Fatal(fmt.Errorf("generate markdown: %w", err))
	}

	fmt.Printf("gen_docs: wrote CLI reference to %s\n", outputDir)
}
