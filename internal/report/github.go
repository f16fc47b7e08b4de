package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// GitHubOutputEnv names the file GitHub Actions reads step outputs from
const GitHubOutputEnv = "GITHUB_OUTPUT"

// WriteGitHubOutputs appends the verified, results and message outputs to the
// step output file at path. An empty path is a no-op so local runs are unaffected.
func WriteGitHubOutputs(path string, rep Report) (err error) {
	if path == "" {
		return nil
	}

	results, err := json.Marshal(rep.Outcomes)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open github output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close github output: %w", closeErr)
		}
	}()

	lines := []string{
		outputLine("verified", fmt.Sprintf("%t", rep.Verified)),
		outputLine("results", string(results)),
		outputLine("message", rep.Message()),
	}
	_, err = f.WriteString(strings.Join(lines, ""))
	return err
}

// outputLine formats one name=value pair; values are kept on one line
func outputLine(name, value string) string {
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	return name + "=" + value + "\n"
}
