package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
)

// NotifySlack posts the run summary and uploads the generated reports to the
// configured channel. A no-op when Slack is not configured.
func NotifySlack(cfg Config, summary string, files []string) error {
	if cfg.SlackBotToken == "" || cfg.SlackChannelID == "" {
		return nil
	}

	api := slack.New(cfg.SlackBotToken)

	_, _, err := api.PostMessage(cfg.SlackChannelID, slack.MsgOptionText(summary, false))
	if err != nil {
		return fmt.Errorf("posting summary: %w", err)
	}

	for _, path := range files {
		fi, err := os.Stat(path)
		if err != nil {
			log.Printf("skipping upload of %s: %v", path, err)
			continue
		}
		_, err = api.UploadFileV2(slack.UploadFileV2Parameters{
			File:           path,
			FileSize:       int(fi.Size()),
			Filename:       filepath.Base(path),
			Channel:        cfg.SlackChannelID,
			Title:          filepath.Base(path),
			InitialComment: fmt.Sprintf("Report generated by %s", cfg.CompanyName),
		})
		if err != nil {
			return fmt.Errorf("uploading %s: %w", path, err)
		}
	}
	return nil
}
