package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ai_content_generator/generator"
)

var (
	genType   string
	genFields []string
	genText   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one piece of content and print it",
	Long: `Run the generation pipeline once without starting the server.

Fields are passed as key=value pairs. Required fields:
  bio:        name, skills        (optional: achievements, tone)
  project:    title, description  (optional: technologies, outcomes)
  reflection: topic, experience   (optional: learnings, future)

Examples:
  ai-content-generator generate --type bio --field name=Ada --field skills=math
  ai-content-generator generate --type project --field title=Shelf --field "description=Book pipeline" -o json
  ai-content-generator generate --type reflection --field topic=Go --field experience=Workshop --text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseFields(genFields)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()
		a.logProvider()

		res, err := a.agent.Generate(cmd.Context(), generator.Request{
			Type: generator.ContentType(genType),
			Data: data,
		})
		if err != nil {
			return err
		}

		if genText {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Content)
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, res)
	},
}

// parseFields turns key=value pairs into a field map.
func parseFields(pairs []string) (map[string]string, error) {
	data := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, want key=value", p)
		}
		data[key] = value
	}
	return data, nil
}

func init() {
	generateCmd.Flags().StringVarP(&genType, "type", "t", "bio", "content type: bio, project or reflection")
	generateCmd.Flags().StringArrayVarP(&genFields, "field", "f", nil, "form field as key=value (repeatable)")
	generateCmd.Flags().BoolVar(&genText, "text", false, "print only the generated content")

	rootCmd.AddCommand(generateCmd)
}
