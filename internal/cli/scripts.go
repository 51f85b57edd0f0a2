package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/demos"
)

var scriptsTags []string

func init() {
	rootCmd.AddCommand(scriptsCmd)
	scriptsCmd.AddCommand(scriptsListCmd)
	scriptsCmd.AddCommand(scriptsShowCmd)
	scriptsCmd.AddCommand(scriptsWatchCmd)

	scriptsListCmd.Flags().StringSliceVar(&scriptsTags, "tag", nil, "filter by tag (repeatable)")
}

var scriptsCmd = &cobra.Command{
	Use:     "scripts",
	Aliases: []string{"script"},
	Short:   "Inspect demo content",
	Long:    "List and show the content the demos are built from: builtin, project (.showcase/demos) and user (~/.config/showcase/demos).",
}

var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List demo content",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(scriptsConfig())
		if err != nil {
			return err
		}
		items := filterContents(catalog.All(), scriptsTags)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, items)
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No demo content found.")
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				item.Name,
				string(item.Kind),
				fmt.Sprintf("%d", contentSize(item)),
				defaultString(item.Title, "-"),
				item.Source,
			})
		}
		return writeTable(cmd.OutOrStdout(), scriptColumns, rows)
	},
}

var scriptsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show demo content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(scriptsConfig())
		if err != nil {
			return err
		}
		content, err := catalog.Find(args[0])
		if err != nil {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "Names are listed by the list subcommand",
				NextStep: "showcase scripts list",
			}
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, content)
		}

		rendered, err := renderMarkdown(contentMarkdown(content))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var scriptsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate demo content on change",
	Long:  "Watch the project and user content directories and reload the catalog after every change, reporting validation errors as they happen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := scriptsConfig()
		watcher := demos.NewWatcher(workingDir(), cfg.Demo.ScriptsDir, 0)
		dirs := watcher.Dirs()
		if len(dirs) == 0 {
			return &PreflightError{
				Message:  "No demo content directory exists",
				Hint:     "Create .showcase/demos in the project or set demo.scripts_dir",
				NextStep: "mkdir -p .showcase/demos",
			}
		}

		out := newLineWriter(cmd.OutOrStdout())
		if !IsJSONOutput() && !IsJSONLOutput() {
			out.Println("Watching " + strings.Join(dirs, ", "))
		}
		return watcher.Run(cmd.Context(), func(catalog *demos.Catalog, err error) {
			reportReload(out, catalog, err)
		})
	},
}

// reloadEvent is the JSON shape of a watch report.
type reloadEvent struct {
	OK    bool     `json:"ok"`
	Error string   `json:"error,omitempty"`
	Items []string `json:"items,omitempty"`
}

func reportReload(out *lineWriter, catalog *demos.Catalog, err error) {
	event := reloadEvent{OK: err == nil}
	if err != nil {
		event.Error = err.Error()
	} else {
		for _, content := range catalog.All() {
			event.Items = append(event.Items, fmt.Sprintf("%s (%s)", content.Name, content.Source))
		}
	}

	if IsJSONOutput() || IsJSONLOutput() {
		_ = out.Encode(event)
		return
	}
	if err != nil {
		out.Println(colorize("invalid", colorRed) + ": " + event.Error)
		return
	}
	out.Println(colorize("reloaded", colorGreen) + ": " + strings.Join(event.Items, ", "))
}

var scriptColumns = []column{
	{Header: "NAME"},
	{Header: "KIND"},
	{Header: "ITEMS", Align: alignRight},
	{Header: "TITLE"},
	{Header: "SOURCE"},
}

func scriptsConfig() *config.Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

func renderMarkdown(md string) (string, error) {
	style := glamour.WithAutoStyle()
	if !colorEnabled() {
		style = glamour.WithStylePath("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// contentMarkdown describes content as a markdown document.
func contentMarkdown(c *demos.Content) string {
	var b strings.Builder

	description := strings.TrimSpace(c.Description)
	if description == "" {
		fmt.Fprintf(&b, "# %s\n", defaultString(c.Title, c.Name))
	} else {
		b.WriteString(description + "\n")
	}
	if c.Subtitle != "" {
		fmt.Fprintf(&b, "\n_%s_\n", c.Subtitle)
	}
	fmt.Fprintf(&b, "\n**Kind:** %s  **Source:** %s\n", c.Kind, c.Source)

	switch c.Kind {
	case demos.KindScreening:
		b.WriteString("\n## Candidates\n\n| Name | Role | Score | Skills |\n|---|---|---|---|\n")
		for _, cand := range c.Candidates {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", cand.Name, cand.Role, cand.Score, strings.Join(cand.Skills, ", "))
		}
	case demos.KindInterview:
		b.WriteString("\n## Transcript\n\n")
		for _, line := range c.Lines {
			speaker := "Candidate"
			if line.Speaker == demos.SpeakerAI {
				speaker = "AI"
			}
			fmt.Fprintf(&b, "- **%s:** %s", speaker, line.Text)
			if line.Sentiment > 0 {
				fmt.Fprintf(&b, " _(sentiment %d%%)_", line.Sentiment)
			}
			b.WriteString("\n")
		}
		if len(c.Analysis) > 0 {
			fmt.Fprintf(&b, "\n**Analysis:** %s\n", strings.Join(c.Analysis, ", "))
		}
	case demos.KindTimeline:
		b.WriteString("\n## Steps\n\n")
		for _, step := range c.Steps {
			fmt.Fprintf(&b, "%d. **%s**: %s\n", step.Step, step.Title, step.Desc)
		}
	case demos.KindMarquee:
		b.WriteString("\n## Features\n\n")
		for _, feature := range c.Features {
			fmt.Fprintf(&b, "- %s\n", feature)
		}
	}
	return b.String()
}

func contentSize(c *demos.Content) int {
	switch c.Kind {
	case demos.KindScreening:
		return len(c.Candidates)
	case demos.KindInterview:
		return len(c.Lines)
	case demos.KindTimeline:
		return len(c.Steps)
	case demos.KindMarquee:
		return len(c.Features)
	default:
		return 0
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
