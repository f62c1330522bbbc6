package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"prepmate-backend-go/internal/db"
	"prepmate-backend-go/internal/groq"
	"prepmate-backend-go/internal/models"
)

// CannedFallback is the local response substituted by callers when the LLM
// gateway fails. Per the error taxonomy an LLM failure is never surfaced as
// a hard error to the end user.
const CannedFallback = "I'm having trouble reaching the assistant right now. " +
	"Here's a tip in the meantime: structure your answer as situation, action, result, " +
	"and quantify the outcome wherever you can. Please try again in a moment."

// interrogativeMarkers flag a user message as a question about themselves or
// their profiles.
var interrogativeMarkers = []string{
	"?", "what", "which", "where", "how", "who", "do i", "does my",
	"can you", "tell me", "show me", "list",
}

var githubKeywords = []string{"github", "repo", "repositories", "git profile"}
var linkedinKeywords = []string{"linkedin", "linked in", "professional profile"}

// chatService implements the ChatService interface.
type chatService struct {
	llm         LLMClient
	profileRepo db.ProfileRepository
	logger      *zap.Logger
}

// NewChatService creates a new ChatService instance.
func NewChatService(llm LLMClient, pr db.ProfileRepository, logger *zap.Logger) ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chatService{llm: llm, profileRepo: pr, logger: logger}
}

// Ask sends the prior history plus the new user turn to the LLM. When the
// user appears to ask about their GitHub or LinkedIn presence, the system
// message is extended with their verified profile facts before sending.
// Failures propagate as groq.ErrGateway; callers substitute CannedFallback
// and must not retry automatically.
func (s *chatService) Ask(ctx context.Context, userID, userInput, systemMessage string, history []models.ChatMessage) (string, error) {
	systemMessage = s.enrichSystemMessage(ctx, userID, userInput, systemMessage)

	messages := make([]groq.Message, 0, len(history)+2)
	messages = append(messages, groq.Message{Role: models.RoleSystem, Content: systemMessage})
	for _, m := range history {
		// Prior system turns are dropped: the (possibly enriched) system
		// message above is the single source of instruction.
		if m.Role == models.RoleSystem {
			continue
		}
		messages = append(messages, groq.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, groq.Message{Role: models.RoleUser, Content: userInput})

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion for user '%s': %w", userID, err)
	}
	return reply, nil
}

// enrichSystemMessage appends verified profile facts when the input asks
// about GitHub or LinkedIn. Unverified or missing links leave the message
// untouched.
func (s *chatService) enrichSystemMessage(ctx context.Context, userID, userInput, systemMessage string) string {
	if userID == "" || s.profileRepo == nil {
		return systemMessage
	}
	input := strings.ToLower(userInput)
	if !containsAny(input, interrogativeMarkers) {
		return systemMessage
	}
	asksGitHub := containsAny(input, githubKeywords)
	asksLinkedIn := containsAny(input, linkedinKeywords)
	if !asksGitHub && !asksLinkedIn {
		return systemMessage
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("profile lookup for chat enrichment failed",
				zap.String("userID", userID), zap.Error(err))
		}
		return systemMessage
	}

	var facts []string
	if asksGitHub {
		if gh := profile.Link(models.ProviderGitHub); gh != nil && gh.Verified {
			facts = append(facts, fmt.Sprintf("their verified GitHub username is %s (%s)", gh.Username, gh.URL))
		}
	}
	if asksLinkedIn {
		if li := profile.Link(models.ProviderLinkedIn); li != nil && li.Verified {
			facts = append(facts, fmt.Sprintf("their verified LinkedIn profile is %s", li.URL))
		}
	}
	if len(facts) == 0 {
		return systemMessage
	}
	return systemMessage + " The user has linked profiles: " + strings.Join(facts, "; ") + "."
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
