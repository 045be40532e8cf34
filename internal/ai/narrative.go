package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Narrative asks the model for a short findings write-up grounded in the
// statistics summary (the tables section of the report).
func Narrative(ctx context.Context, c *Client, model string, datasetName, summary string) (string, error) {
	prompt := fmt.Sprintf(`Below is the analysis summary for the dataset %s:

%s

Write a short findings report based on these statistics:
- Summarize key patterns and any surprising trends.
- Call out columns with heavy missingness or strong correlations.
- Keep it factual; do not invent values not present in the summary.

Format the response as plain Markdown prose without headings.`, datasetName, summary)

	resp, err := c.Generate(ctx, GenerateRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: "You are a data analyst writing concise dataset summaries."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
