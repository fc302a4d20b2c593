// Package advisor is the backend the web service calls for chat replies and
// resume analysis. Both are answered by a Gemini model.
package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const agentName = "resume_parser"

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty model response")

// Chatter answers a free-form chat message.
type Chatter interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Extractor turns resume text into the model's raw JSON answer.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (string, error)
}

// GeminiChat sends each message to the model as a single-turn request.
type GeminiChat struct {
	client *genai.Client
	model  string
}

func NewGeminiChat(ctx context.Context, apiKey, model string) (*GeminiChat, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiChat{client: client, model: model}, nil
}

func (g *GeminiChat) Reply(ctx context.Context, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// AgentExtractor runs the resume parsing agent. Every call gets its own
// agent session, deleted once the final response has been read.
type AgentExtractor struct {
	runner   *runner.Runner
	sessions session.Service
}

func NewAgentExtractor(ctx context.Context, apiKey, modelName string) (*AgentExtractor, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	parser, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Extract structured data from a resume",
		Instruction: resumePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        parser.Name(),
		Agent:          parser,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &AgentExtractor{runner: r, sessions: sessions}, nil
}

func (a *AgentExtractor) Extract(ctx context.Context, resumeText string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   agentName,
		UserID:    "careercompass",
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	s := created.Session
	defer a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
		AppName:   s.AppName(),
		UserID:    s.UserID(),
		SessionID: s.ID(),
	})

	stream := a.runner.Run(ctx, s.UserID(), s.ID(), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: "Resume:\n" + resumeText}},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

const resumePrompt = `Extract structured data from the resume text you are given and return JSON ONLY.

JSON Format:
{
  "personalInfo": {"name": "", "currentRole": "", "experience": "", "education": "", "email": "", "phone": "", "address": ""},
  "skills": [{ "name": "", "level": "Intermediate", "progress": 70 }],
  "experience": [{ "title": "", "company": "", "duration": "", "description": "" }],
  "certifications": [{ "name": "", "year": "" }]
}`
