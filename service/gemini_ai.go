package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/baotran/docqa-be/types"
)

// GeminiService generates answers through the Gemini API. Several API keys
// can be supplied; on a failed call the service rotates to the next key and
// retries once, which rides out per-key quota exhaustion.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	modelName  string
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:   apiKeys,
		modelName: modelName,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) newModel(systemPrompt string) *genai.GenerativeModel {
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(generationTemperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	return model
}

func (s *GeminiService) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := s.newModel(systemPrompt)

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		model = s.newModel(systemPrompt)
		resp, err = model.GenerateContent(ctx, genai.Text(userPrompt))
		if err != nil {
			return "", err
		}
	}

	return collectText(resp), nil
}

func (s *GeminiService) GenerateStream(ctx context.Context, systemPrompt, userPrompt string, handler types.StreamHandler) error {
	if handler == nil {
		return errors.New("stream handler is required")
	}
	model := s.newModel(systemPrompt)
	iter := model.GenerateContentStream(ctx, genai.Text(userPrompt))

	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			if err := s.rotateAPIKey(); err != nil {
				return err
			}
			model = s.newModel(systemPrompt)
			iter = model.GenerateContentStream(ctx, genai.Text(userPrompt))
			resp, err = iter.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return err
			}
		}
		handler(collectText(resp))
	}
}

func collectText(resp *genai.GenerateContentResponse) string {
	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content
}
