// Package greeting produces the spoken welcome played when a reviewer
// starts a session. It is decorative: any failure here is logged and the
// session proceeds without audio.
package greeting

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"codeswitch-review/internal/config"
)

// Greeter rephrases and synthesizes a session greeting.
type Greeter interface {
	// Rephrase rewords the text in a playful, friendly way while
	// keeping its meaning.
	Rephrase(ctx context.Context, text string) (string, error)
	// Synthesize converts text to speech and writes the audio to an
	// mp3 file, returning its path.
	Synthesize(ctx context.Context, text, filename string) (string, error)
}

// Service implements Greeter using the OpenAI API.
type Service struct {
	client    openai.Client
	voice     string
	ttsModel  string
	chatModel string
	outputDir string
}

var _ Greeter = (*Service)(nil)

// NewService creates a new greeting service
func NewService(cfg *config.SpeechConfig) *Service {
	return &Service{
		client:    openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		voice:     cfg.Voice,
		ttsModel:  cfg.TTSModel,
		chatModel: cfg.ChatModel,
		outputDir: cfg.OutputDir,
	}
}

// Rephrase rewords the greeting via a chat completion
func (s *Service) Rephrase(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an assistant that specializes in rephrasing text in a playful and friendly way, while retaining its original meaning."),
			openai.UserMessage(fmt.Sprintf("Please rephrase the following text:\n%s", text)),
		},
		Temperature: openai.Float(1),
	})
	if err != nil {
		return "", fmt.Errorf("greeting rephrase: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("greeting rephrase: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Synthesize converts text to speech and writes it to an mp3 file
func (s *Service) Synthesize(ctx context.Context, text, filename string) (string, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.ttsModel),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return "", fmt.Errorf("greeting synthesize: %w", err)
	}
	defer resp.Body.Close()

	path := filepath.Join(s.outputDir, filename)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return path, nil
}

// WelcomeText composes the plain greeting before any rephrasing.
func WelcomeText(reviewer string, completed int) string {
	return fmt.Sprintf("Welcome back %s. You have completed %d reviews so far. Thank you for your work.", reviewer, completed)
}

// SanitizeName reduces a reviewer name to characters safe inside a
// filename. Anything outside lowercase letters, digits, dot, underscore
// and hyphen becomes an underscore, so path separators can never reach
// the audio file path.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}
