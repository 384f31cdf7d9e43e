package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostup/pkg/errors"
)

//go:embed docs/*.md
var topicsFS embed.FS

var topicsCmd = &cobra.Command{
	Use:   "topics [topic]",
	Short: "Show long-form documentation topics",
	Long:  `Without arguments, lists the available topics. With a topic name, renders it for the terminal.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listTopics()
		}
		return showTopic(args[0])
	},
}

func topicNames() ([]string, error) {
	entries, err := topicsFS.ReadDir("docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read embedded topics")
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

func listTopics() error {
	names, err := topicNames()
	if err != nil {
		return err
	}
	fmt.Println(formatSectionHeader("topics"))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("\nUse \"hostup topics <name>\" to read one.")
	return nil
}

func showTopic(name string) error {
	content, err := topicsFS.ReadFile("docs/" + name + ".md")
	if err != nil {
		return errors.Newf(errors.ErrNotFound, "unknown topic: %s", name)
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		// Fall back to the raw markdown
		fmt.Print(string(content))
		return nil
	}
	rendered, err := renderer.Render(string(content))
	if err != nil {
		fmt.Print(string(content))
		return nil
	}
	fmt.Print(rendered)
	return nil
}
