package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

const recommendationSystemPrompt = `You are a retail marketing analyst. Given RFM segmentation findings, write a short, concrete set of marketing recommendations: one action block per segment present in the data, each with a target, an offer or tactic, and the expected impact. Be specific and succinct. Plain text only.`

// narrateFn is a seam for tests; production use calls the Anthropic API.
var narrateFn = callAnthropic

// BuildFindings produces the deterministic key-findings text straight from
// the analysis tables.
func BuildFindings(customers []CustomerRFM, summary []SegmentSummary, cfg Config) string {
	totalRevenue := 0.0
	for _, c := range customers {
		totalRevenue += c.Monetary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "KEY FINDINGS\n\n")
	fmt.Fprintf(&b, "1. Customer base: %d customers, total revenue %s%s\n",
		len(customers), cfg.Currency, formatAmount(totalRevenue))

	b.WriteString("\n2. Customer segments:\n")
	for _, s := range summary {
		fmt.Fprintf(&b, "   %s: %d customers (%.1f%% of revenue, avg order %s%s)\n",
			s.Segment, s.CustomerCount, s.RevenueShare*100, cfg.Currency, formatAmount(s.AvgOrderValue))
	}

	topCount, share := TopPercentConcentration(customers, cfg.TopPercent)
	fmt.Fprintf(&b, "\n3. Top %d%% customers: %d customers contributing %.1f%% of revenue\n",
		cfg.TopPercent, topCount, share*100)

	fmt.Fprintf(&b, "\n4. Repeat purchase rate: %.1f%%\n", RepeatPurchaseRate(customers)*100)

	for _, s := range summary {
		if s.Segment == SegmentAtRisk {
			fmt.Fprintf(&b, "\n5. At-risk customers: %d, potential lost revenue %s%s\n",
				s.CustomerCount, cfg.Currency, formatAmount(s.TotalRevenue))
		}
	}
	return b.String()
}

// GenerateRecommendations returns the findings followed by marketing
// recommendations. When an Anthropic key is configured the recommendations
// are written by the model from the findings; otherwise a fixed playbook per
// present segment is used.
func GenerateRecommendations(customers []CustomerRFM, summary []SegmentSummary, cfg Config) (string, error) {
	findings := BuildFindings(customers, summary, cfg)

	if cfg.AnthropicAPIKey == "" {
		return findings + "\n" + staticRecommendations(summary), nil
	}

	narrative, err := narrateFn(cfg.AnthropicAPIKey, cfg.LLMModel, recommendationSystemPrompt, findings)
	if err != nil {
		return "", fmt.Errorf("generating recommendations: %w", err)
	}
	return findings + "\nRECOMMENDATIONS\n\n" + narrative + "\n", nil
}

var segmentPlaybook = map[string]string{
	SegmentChampions:          "Launch a tiered loyalty program: exclusive discounts, early access, VIP benefits.",
	SegmentLoyal:              "Maintain engagement with personalized product recommendations and cross-sell campaigns.",
	SegmentPotentialLoyalists: "Run a welcome series with product recommendations to convert into Champions.",
	SegmentAtRisk:             "Send a personalized re-engagement offer now, before these customers are lost.",
	SegmentLost:               "Low-priority win-back with a strong incentive; expected ROI is limited.",
	SegmentOthers:             "Monitor purchase patterns and target with category-specific campaigns.",
}

func staticRecommendations(summary []SegmentSummary) string {
	var b strings.Builder
	b.WriteString("RECOMMENDATIONS\n\n")
	for _, s := range summary {
		if action, ok := segmentPlaybook[s.Segment]; ok {
			fmt.Fprintf(&b, "- %s (%d customers): %s\n", s.Segment, s.CustomerCount, action)
		}
	}
	return b.String()
}

func callAnthropic(apiKey, model, systemPrompt, userPrompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}
