package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/vimwiki/internal/commands"
	"github.com/gerunddev/vimwiki/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	commands.PlainOutputUnlessTerminal()

	command := os.Args[1]

	switch command {
	case "html":
		commands.HTML(os.Args[2:])
	case "fmt":
		commands.Fmt(os.Args[2:])
	case "check":
		commands.Check(os.Args[2:])
	case "inspect":
		commands.Inspect(os.Args[2:])
	case "build":
		commands.Build(os.Args[2:])
	case "browse", "pages":
		commands.Browse(os.Args[2:])
	case "init":
		commands.Init(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("vimwiki v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`vimwiki - Parse, render and format vimwiki pages

Usage:
  vimwiki <command> [options]

Commands:
  html        Render one page to HTML (--document, --sanitize, -o file)
  fmt         Print pages in canonical form (--write, --diff)
  check       Report parse problems (--links also reports unresolved links)
  inspect     Print the syntax tree of a page as YAML
  build       Render the whole wiki to the output directory (--dry-run)
  browse      Browse the pages of the wiki
  init        Write the default configuration (--force)
  version     Show version information
  help        Show this help message

Every command accepts --config <file> (.json, .toml, .yaml).
A page argument of "-" reads from stdin.

Examples:
  vimwiki html index.wiki
  vimwiki html --document -o index.html index.wiki
  vimwiki fmt --diff diary/2024-01-02.wiki
  vimwiki fmt -w *.wiki
  vimwiki check --links
  vimwiki build --dry-run
  vimwiki browse

Configuration:
  Config file: %s

For more information, visit: https://github.com/gerunddev/vimwiki
`, config.ConfigPath())
	fmt.Print(usage)
}
